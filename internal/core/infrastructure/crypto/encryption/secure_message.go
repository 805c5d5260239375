// Package encryption 实现点对点安全消息
//
// 密文布局：
//
//	nonce_pubkey(33) || AES-256-CFB8(envelope) || HMAC-SHA256(ciphertext)[:8]
//
// 会话密钥由 ECDH 共享点的压缩编码经 PBKDF2 派生。
package encryption

import (
	"crypto/aes"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/secp256k1"
	infralog "github.com/weisyn/securemsg/internal/core/infrastructure/log"
	"github.com/weisyn/securemsg/internal/core/infrastructure/metrics"
	cryptointf "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/log"
)

// 确保SecureMessageService实现了cryptointf.SecureMessageManager接口
var _ cryptointf.SecureMessageManager = (*SecureMessageService)(nil)

const (
	// NoncePubKeyLength 临时公钥长度（压缩）
	NoncePubKeyLength = 33
	// TagLength 截断后的 MAC 长度
	TagLength = 8
	// MinEncryptedLength 最短密文
	MinEncryptedLength = NoncePubKeyLength + TagLength

	// maxNonceDraws 临时私钥重抽上限
	maxNonceDraws = 16
)

// SecureMessageService 提供安全消息加解密
type SecureMessageService struct {
	curve     secp256k1.Arithmetic
	signature cryptointf.SignatureManager
	entropy   cryptointf.EntropySource
	logger    log.Logger
}

// NewSecureMessageService 创建安全消息服务
func NewSecureMessageService(
	curve secp256k1.Arithmetic,
	sigManager cryptointf.SignatureManager,
	entropy cryptointf.EntropySource,
	logger log.Logger,
) *SecureMessageService {
	if curve == nil {
		curve = secp256k1.NewCurve()
	}
	if logger == nil {
		logger = infralog.NewNopLogger()
	}
	return &SecureMessageService{
		curve:     curve,
		signature: sigManager,
		entropy:   entropy,
		logger:    logger,
	}
}

// Encrypt 为接收方公钥加密消息
//
// recipient 可以是压缩或未压缩编码；signer 非空时用其密钥签名消息并写入信封。
func (s *SecureMessageService) Encrypt(recipient []byte, message []byte, displayOnly bool, signer *cryptointf.KeyRef) ([]byte, error) {
	out, err := s.encrypt(recipient, message, displayOnly, signer)
	metrics.ObserveOperation(metrics.OpEncrypt, err)
	return out, err
}

func (s *SecureMessageService) encrypt(recipient []byte, message []byte, displayOnly bool, signer *cryptointf.KeyRef) ([]byte, error) {
	recipientPub, err := btcec.ParsePubKey(recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient public key: %v", cryptointf.ErrDecode, err)
	}

	env := &Envelope{Message: message, DisplayOnly: displayOnly}
	if signer != nil {
		if s.signature == nil {
			return nil, fmt.Errorf("%w: no signature service", cryptointf.ErrKeyUnavailable)
		}
		addr, sig, err := s.signature.SignWithKey(*signer, message)
		if err != nil {
			return nil, fmt.Errorf("签名消息失败: %w", err)
		}
		if env.AddressBin, err = address.ToBinary(addr); err != nil {
			return nil, err
		}
		env.Signed = true
		env.Signature = sig
	}
	plaintext, err := EncodeEnvelope(env)
	if err != nil {
		return nil, err
	}

	out, err := s.seal(recipientPub, plaintext)
	if err != nil {
		return nil, err
	}

	s.logger.Debugf("安全消息已加密: envelope=%d bytes signed=%t", len(plaintext), env.Signed)
	return out, nil
}

// seal 用临时密钥加密已编码的信封
func (s *SecureMessageService) seal(recipientPub *btcec.PublicKey, plaintext []byte) ([]byte, error) {
	nonce, err := s.drawNonce()
	if err != nil {
		return nil, err
	}
	defer nonce.Zero()

	noncePub, err := s.curve.ScalarBaseMult(nonce).PublicKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptointf.ErrSigningFailed, err)
	}
	noncePubBytes := noncePub.SerializeCompressed()

	secret, err := s.sharedSecret(nonce, recipientPub)
	if err != nil {
		return nil, err
	}
	keys := deriveKeys(secret, noncePubBytes)
	clear(secret)
	defer keys.wipe()

	block, err := aes.NewCipher(keys.aesKey)
	if err != nil {
		return nil, fmt.Errorf("创建AES密码器失败: %w", err)
	}

	out := make([]byte, NoncePubKeyLength+len(plaintext)+TagLength)
	copy(out, noncePubBytes)
	ciphertext := out[NoncePubKeyLength : NoncePubKeyLength+len(plaintext)]
	NewCFB8Encrypter(block, keys.iv).XORKeyStream(ciphertext, plaintext)
	copy(out[NoncePubKeyLength+len(plaintext):], computeTag(keys.hmacKey, ciphertext))

	return out, nil
}

// Decrypt 使用 owner 的私钥解密并校验消息
func (s *SecureMessageService) Decrypt(owner cryptointf.KeyRef, encrypted []byte) (*cryptointf.DecryptedMessage, error) {
	msg, err := s.decrypt(owner, encrypted)
	metrics.ObserveOperation(metrics.OpDecrypt, err)
	return msg, err
}

func (s *SecureMessageService) decrypt(owner cryptointf.KeyRef, encrypted []byte) (*cryptointf.DecryptedMessage, error) {
	if len(encrypted) < MinEncryptedLength {
		return nil, fmt.Errorf("%w: expected at least %d bytes, got %d",
			cryptointf.ErrMalformedMessage, MinEncryptedLength, len(encrypted))
	}
	noncePubBytes := encrypted[:NoncePubKeyLength]
	ciphertext := encrypted[NoncePubKeyLength : len(encrypted)-TagLength]
	tag := encrypted[len(encrypted)-TagLength:]

	noncePub, err := btcec.ParsePubKey(noncePubBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce public key: %v", cryptointf.ErrMalformedMessage, err)
	}

	if owner.Provider == nil {
		return nil, fmt.Errorf("%w: no key provider", cryptointf.ErrKeyUnavailable)
	}
	priv, err := owner.Provider.PrivateKey(owner.Path)
	if err != nil {
		return nil, fmt.Errorf("获取私钥失败: %w", err)
	}

	secret, err := s.sharedSecret(&priv.Key, noncePub)
	if err != nil {
		return nil, err
	}
	keys := deriveKeys(secret, noncePubBytes)
	clear(secret)
	defer keys.wipe()

	if !hmac.Equal(tag, computeTag(keys.hmacKey, ciphertext)) {
		return nil, cryptointf.ErrAuthenticationFailed
	}

	block, err := aes.NewCipher(keys.aesKey)
	if err != nil {
		return nil, fmt.Errorf("创建AES密码器失败: %w", err)
	}
	plaintext := make([]byte, len(ciphertext))
	NewCFB8Decrypter(block, keys.iv).XORKeyStream(plaintext, ciphertext)

	env, err := DecodeEnvelope(plaintext)
	if err != nil {
		return nil, err
	}

	result := &cryptointf.DecryptedMessage{
		Message:     env.Message,
		DisplayOnly: env.DisplayOnly,
	}
	if !env.Signed {
		return result, nil
	}

	signer, err := address.FromBinary(env.AddressBin[:])
	if err != nil {
		return nil, fmt.Errorf("%w: signer address: %v", cryptointf.ErrMalformedMessage, err)
	}
	if s.signature == nil {
		return nil, fmt.Errorf("%w: no signature service", cryptointf.ErrInvalidSignature)
	}
	if _, err := s.signature.Verify(signer, env.Signature, env.Message); err != nil {
		return nil, fmt.Errorf("签名者验证失败: %w", err)
	}
	result.Address = signer
	return result, nil
}

// drawNonce 从熵源抽取 [1, n-1] 内的临时私钥
func (s *SecureMessageService) drawNonce() (*btcec.ModNScalar, error) {
	if s.entropy == nil {
		return nil, fmt.Errorf("%w: no entropy source", cryptointf.ErrKeyUnavailable)
	}
	for i := 0; i < maxNonceDraws; i++ {
		buf, err := s.entropy.RandomBytes(32)
		if err != nil {
			return nil, fmt.Errorf("读取随机数失败: %w", err)
		}
		k, ok := secp256k1.ScalarFromBytes(buf)
		clear(buf)
		if ok {
			return &k, nil
		}
	}
	return nil, fmt.Errorf("%w: entropy source produced no valid scalar", cryptointf.ErrSigningFailed)
}

// sharedSecret k·P 的压缩编码
func (s *SecureMessageService) sharedSecret(k *btcec.ModNScalar, pub *btcec.PublicKey) ([]byte, error) {
	shared, err := s.curve.ScalarMult(k, secp256k1.PointFromPublicKey(pub)).PublicKey()
	if err != nil {
		return nil, fmt.Errorf("%w: shared point: %v", cryptointf.ErrMalformedMessage, err)
	}
	return shared.SerializeCompressed(), nil
}

func computeTag(key, ciphertext []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(ciphertext)
	return mac.Sum(nil)[:TagLength]
}
