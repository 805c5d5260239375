// Package hash 提供消息签名使用的哈希原语
//
// - DoubleSHA256：SHA256(SHA256(data))
// - Hash160：RIPEMD160(SHA256(data))，用于地址
// - MessagePreimage / MessageDigest：带魔术前缀的消息摘要
package hash

import (
	"bytes"
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // 地址格式固定使用 RIPEMD160
)

// MessageMagic 签名消息前缀，首字节 0x18 为后续字符串长度
const MessageMagic = "\x18Bitcoin Signed Message:\n"

// DoubleSHA256 计算双重 SHA256
func DoubleSHA256(data []byte) [32]byte {
	return chainhash.DoubleHashH(data)
}

// Hash160 计算 RIPEMD160(SHA256(data))
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	hasher := ripemd160.New()
	hasher.Write(sha[:])
	return hasher.Sum(nil)
}

// MessagePreimage 构造签名前像
//
//	"\x18Bitcoin Signed Message:\n" || varint(len(message)) || message
func MessagePreimage(message []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(MessageMagic) + wire.VarIntSerializeSize(uint64(len(message))) + len(message))
	buf.WriteString(MessageMagic)
	// bytes.Buffer 写入不会失败
	_ = wire.WriteVarBytes(&buf, 0, message)
	return buf.Bytes()
}

// MessageDigest 计算消息签名摘要
func MessageDigest(message []byte) [32]byte {
	return DoubleSHA256(MessagePreimage(message))
}
