// Package signature 实现可恢复的消息签名
//
// 签名格式（65字节）：
//
//	marker(1) || r(32, big-endian) || s(32, big-endian)
//	marker = 27 + recid + 4   (压缩公钥)
//
// 签名摘要为 DoubleSHA256("\x18Bitcoin Signed Message:\n" || varint(len) || message)。
// 验证方无需公钥，由签名恢复出公钥后与地址比对。
package signature

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcec_ecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/secp256k1"
	infralog "github.com/weisyn/securemsg/internal/core/infrastructure/log"
	"github.com/weisyn/securemsg/internal/core/infrastructure/metrics"
	cryptointf "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/log"
)

// 确保SignatureService实现了cryptointf.SignatureManager接口
var _ cryptointf.SignatureManager = (*SignatureService)(nil)

const (
	// SignatureLength 可恢复签名长度
	SignatureLength = 65
	// HashLength 摘要长度
	HashLength = 32

	// MarkerBase 恢复标记基数
	MarkerBase = 27
	// CompressedFlag 压缩公钥标记偏移
	CompressedFlag = 4
	// MaxMarker 允许的最大恢复标记
	MaxMarker = MarkerBase + 3 + CompressedFlag
)

// SignatureService 提供可恢复消息签名
type SignatureService struct {
	curve  secp256k1.Arithmetic
	logger log.Logger
}

// NewSignatureService 创建新的签名服务
//
// curve 为 nil 时使用默认 secp256k1 实现，logger 可为 nil。
func NewSignatureService(curve secp256k1.Arithmetic, logger log.Logger) *SignatureService {
	if curve == nil {
		curve = secp256k1.NewCurve()
	}
	if logger == nil {
		logger = infralog.NewNopLogger()
	}
	return &SignatureService{
		curve:  curve,
		logger: logger,
	}
}

// Sign 使用私钥签名消息，返回压缩公钥地址与 65 字节签名
func (ss *SignatureService) Sign(priv *btcec.PrivateKey, version byte, message []byte) (string, []byte, error) {
	addr := address.FromPubKey(priv.PubKey(), version, true)
	sig, err := ss.sign(priv, addr, message)
	metrics.ObserveOperation(metrics.OpSign, err)
	if err != nil {
		return "", nil, err
	}
	return addr, sig, nil
}

// SignWithKey 通过密钥提供者签名消息
//
// 地址取自密钥提供者，签名自检以该地址为准。
func (ss *SignatureService) SignWithKey(ref cryptointf.KeyRef, message []byte) (string, []byte, error) {
	addr, sig, err := ss.signWithKey(ref, message)
	metrics.ObserveOperation(metrics.OpSign, err)
	return addr, sig, err
}

func (ss *SignatureService) signWithKey(ref cryptointf.KeyRef, message []byte) (string, []byte, error) {
	if ref.Provider == nil {
		return "", nil, fmt.Errorf("%w: no key provider", cryptointf.ErrKeyUnavailable)
	}
	priv, err := ref.Provider.PrivateKey(ref.Path)
	if err != nil {
		return "", nil, fmt.Errorf("获取私钥失败: %w", err)
	}
	addr, err := ref.Provider.Address(ref.Network, ref.Path)
	if err != nil {
		return "", nil, fmt.Errorf("获取地址失败: %w", err)
	}
	sig, err := ss.sign(priv, addr, message)
	if err != nil {
		return "", nil, err
	}
	return addr, sig, nil
}

// sign 生成 r||s 后依次尝试四个恢复标记，返回第一个能通过 Verify 的签名
func (ss *SignatureService) sign(priv *btcec.PrivateKey, addr string, message []byte) ([]byte, error) {
	digest := hash.MessageDigest(message)

	// RFC6979 确定性签名，s 已规范为低值
	compact := btcec_ecdsa.SignCompact(priv, digest[:], true)
	var s secp.ModNScalar
	s.SetByteSlice(compact[33:65])
	if s.IsOverHalfOrder() {
		ss.logger.Error("签名 s 值未规范化")
		return nil, cryptointf.ErrSigningFailed
	}

	sig := make([]byte, SignatureLength)
	copy(sig[1:], compact[1:])
	for recid := byte(0); recid < 4; recid++ {
		sig[0] = MarkerBase + recid + CompressedFlag
		if _, err := ss.verify(addr, sig, message); err == nil {
			return sig, nil
		}
	}

	ss.logger.Errorf("签名自检失败: 四个恢复标记均无法恢复出地址 %s", addr)
	return nil, cryptointf.ErrSigningFailed
}

// Verify 验证签名并返回恢复出的公钥
//
// addr 为空时只验证签名本身；否则还要求恢复出的地址与 addr 一致，
// 地址版本字节取自 addr。
func (ss *SignatureService) Verify(addr string, sig, message []byte) (*btcec.PublicKey, error) {
	pub, err := ss.verify(addr, sig, message)
	metrics.ObserveOperation(metrics.OpVerify, err)
	return pub, err
}

func (ss *SignatureService) verify(addr string, sig, message []byte) (*btcec.PublicKey, error) {
	compressed, recid, err := parseMarker(sig)
	if err != nil {
		return nil, err
	}

	digest := hash.MessageDigest(message)
	pub, err := ss.RecoverPublicKey(digest[:], recid, sig[1:33], sig[33:65])
	if err != nil {
		return nil, err
	}

	var r, s secp.ModNScalar
	r.SetByteSlice(sig[1:33])
	s.SetByteSlice(sig[33:65])
	if !btcec_ecdsa.NewSignature(&r, &s).Verify(digest[:], pub) {
		return nil, fmt.Errorf("%w: ecdsa verification failed", cryptointf.ErrInvalidSignature)
	}

	if addr == "" {
		return pub, nil
	}
	_, version, err := address.Decode(addr)
	if err != nil {
		return nil, err
	}
	if recovered := address.FromPubKey(pub, version, compressed); recovered != addr {
		return nil, fmt.Errorf("%w: expected %s, recovered %s", cryptointf.ErrAddressMismatch, addr, recovered)
	}
	return pub, nil
}

// RecoverPublicKey 由摘要与 (recid, r, s) 恢复公钥
//
//	x = r + (recid/2)·n，要求 x < p
//	R = (x, y)，y 的奇偶性为 recid&1
//	Q = r⁻¹·(s·R − e·G)
func (ss *SignatureService) RecoverPublicKey(digest []byte, recid byte, rBytes, sBytes []byte) (*btcec.PublicKey, error) {
	if len(digest) != HashLength {
		return nil, fmt.Errorf("%w: digest expected %d bytes, got %d", cryptointf.ErrDecode, HashLength, len(digest))
	}
	if recid > 3 {
		return nil, fmt.Errorf("%w: recid %d", cryptointf.ErrBadRecoveryMarker, recid)
	}

	r, okR := secp256k1.ScalarFromBytes(rBytes)
	s, okS := secp256k1.ScalarFromBytes(sBytes)
	if !okR || !okS {
		return nil, fmt.Errorf("%w: r or s out of range", cryptointf.ErrInvalidSignature)
	}

	x := new(big.Int).SetBytes(rBytes)
	if recid&2 != 0 {
		x.Add(x, ss.curve.Order())
	}
	R, err := ss.curve.LiftX(x, recid&1 == 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptointf.ErrInvalidSignature, err)
	}

	var e secp.ModNScalar
	e.SetByteSlice(digest)

	w := ss.curve.InverseModN(&r)
	var u1, u2 secp.ModNScalar
	u1.Mul2(&e, w).Negate()
	u2.Mul2(&s, w)

	q := ss.curve.Add(ss.curve.ScalarBaseMult(&u1), ss.curve.ScalarMult(&u2, R))
	pub, err := q.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptointf.ErrInvalidSignature, err)
	}
	return pub, nil
}

// parseMarker 校验签名长度与恢复标记
func parseMarker(sig []byte) (compressed bool, recid byte, err error) {
	if len(sig) != SignatureLength {
		return false, 0, fmt.Errorf("%w: expected %d bytes, got %d",
			cryptointf.ErrBadSignatureLength, SignatureLength, len(sig))
	}
	marker := sig[0]
	if marker < MarkerBase || marker > MaxMarker {
		return false, 0, fmt.Errorf("%w: %d", cryptointf.ErrBadRecoveryMarker, marker)
	}
	return marker >= MarkerBase+CompressedFlag, (marker - MarkerBase) & 0x03, nil
}
