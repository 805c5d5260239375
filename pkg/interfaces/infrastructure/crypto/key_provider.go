// Package crypto 定义消息签名与安全消息子系统的对外接口
//
// 🎯 **核心接口**
// - KeyProvider：按派生路径提供私钥、公钥与地址
// - EntropySource：为临时密钥提供随机字节
// - SignatureManager：消息签名与验证
// - SecureMessageManager：安全消息加解密
//
// 核心实现不持有任何全局钱包状态，所有密钥材料通过 KeyRef 显式传入。
package crypto

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
)

// KeyProvider 密钥提供者
//
// 未加载种子时所有方法返回 ErrKeyUnavailable。
// 路径格式为 BIP32 字符串，例如 m/44'/0'/0'/0/0。
type KeyProvider interface {
	// PrivateKey 返回路径对应的私钥
	PrivateKey(path string) (*btcec.PrivateKey, error)

	// PublicKey 返回路径对应的公钥
	PublicKey(path string) (*btcec.PublicKey, error)

	// Address 返回路径对应的压缩公钥地址，版本字节取自 net
	Address(net *chaincfg.Params, path string) (string, error)
}

// KeyRef 单次调用使用的密钥上下文
type KeyRef struct {
	Provider KeyProvider
	Path     string
	Network  *chaincfg.Params
}

// EntropySource 随机字节来源
type EntropySource interface {
	// RandomBytes 返回 n 个随机字节
	RandomBytes(n int) ([]byte, error)
}
