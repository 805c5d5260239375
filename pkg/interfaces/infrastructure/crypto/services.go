package crypto

import "github.com/btcsuite/btcd/btcec/v2"

// SignatureManager 可恢复消息签名
//
// 签名格式为 65 字节：marker(1) || r(32) || s(32)，
// marker = 27 + recid + 4（压缩公钥）。
type SignatureManager interface {
	// Sign 使用给定私钥签名，返回签名者地址与签名
	Sign(priv *btcec.PrivateKey, version byte, message []byte) (string, []byte, error)

	// SignWithKey 通过密钥提供者取得私钥与地址后签名
	SignWithKey(ref KeyRef, message []byte) (string, []byte, error)

	// Verify 恢复并验证签名者公钥；address 为空时不做地址比对
	Verify(address string, signature, message []byte) (*btcec.PublicKey, error)

	// SignDigest 对 32 字节摘要做 ECDSA 签名，返回未压缩公钥与 DER 签名
	SignDigest(priv *btcec.PrivateKey, digest []byte) ([]byte, []byte, error)
}

// DecryptedMessage 安全消息解密结果
type DecryptedMessage struct {
	Message     []byte
	DisplayOnly bool
	// Address 签名者地址，未签名消息为空
	Address string
}

// SecureMessageManager 安全消息编解码
type SecureMessageManager interface {
	// Encrypt 为接收方公钥加密消息；signer 非空时附带签名
	Encrypt(recipient []byte, message []byte, displayOnly bool, signer *KeyRef) ([]byte, error)

	// Decrypt 使用 owner 的私钥解密并校验消息
	Decrypt(owner KeyRef, encrypted []byte) (*DecryptedMessage, error)
}
