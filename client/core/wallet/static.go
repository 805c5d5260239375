package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/secp256k1"
	cryptointf "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
)

var _ cryptointf.KeyProvider = (*StaticKey)(nil)

// StaticKey 与路径无关的单个私钥
type StaticKey struct {
	priv *btcec.PrivateKey
}

// NewStaticKey 由 32 字节私钥创建，要求 0 < k < n
func NewStaticKey(raw []byte) (*StaticKey, error) {
	if _, ok := secp256k1.ScalarFromBytes(raw); !ok {
		return nil, fmt.Errorf("%w: private key out of range", cryptointf.ErrDecode)
	}
	priv, _ := btcec.PrivKeyFromBytes(raw)
	return &StaticKey{priv: priv}, nil
}

// NewStaticKeyFromWIF 由 WIF 编码创建，地址总是使用压缩公钥
func NewStaticKeyFromWIF(wif string) (*StaticKey, error) {
	decoded, err := btcutil.DecodeWIF(wif)
	if err != nil {
		return nil, fmt.Errorf("%w: wif: %v", cryptointf.ErrDecode, err)
	}
	return &StaticKey{priv: decoded.PrivKey}, nil
}

// PrivateKey 返回私钥，忽略路径
func (s *StaticKey) PrivateKey(string) (*btcec.PrivateKey, error) {
	return s.priv, nil
}

// PublicKey 返回公钥，忽略路径
func (s *StaticKey) PublicKey(string) (*btcec.PublicKey, error) {
	return s.priv.PubKey(), nil
}

// Address 返回压缩公钥地址
func (s *StaticKey) Address(net *chaincfg.Params, _ string) (string, error) {
	return address.FromPubKey(s.priv.PubKey(), address.Version(net), true), nil
}
