// Package address 提供 P2PKH 地址编解码
//
// 地址 = base58check(version(1) || hash160(pubkey)(20))
// 二进制形式（21 字节）为 version || hash160，用于安全消息明文信封。
package address

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/hash"
	cryptointf "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
)

const (
	// AddressHashLength 地址哈希长度（20字节）
	AddressHashLength = 20
	// BinaryLength 二进制地址长度（版本字节 + 哈希）
	BinaryLength = 1 + AddressHashLength
	// CompressedPublicKeyLength 压缩公钥长度（33字节）
	CompressedPublicKeyLength = 33
	// UncompressedPublicKeyLength 未压缩公钥长度（65字节）
	UncompressedPublicKeyLength = 65
)

// FromPubKey 由公钥生成地址
//
// compressed 决定对哪种序列化做 hash160，同一私钥的两种地址不同。
func FromPubKey(pub *btcec.PublicKey, version byte, compressed bool) string {
	var serialized []byte
	if compressed {
		serialized = pub.SerializeCompressed()
	} else {
		serialized = pub.SerializeUncompressed()
	}
	return Encode(hash.Hash160(serialized), version)
}

// FromPubKeyBytes 由序列化公钥生成地址，压缩属性取自编码本身
func FromPubKeyBytes(pubKey []byte, version byte) (string, error) {
	if len(pubKey) != CompressedPublicKeyLength && len(pubKey) != UncompressedPublicKeyLength {
		return "", fmt.Errorf("%w: public key expected %d or %d bytes, got %d",
			cryptointf.ErrDecode, CompressedPublicKeyLength, UncompressedPublicKeyLength, len(pubKey))
	}
	if _, err := btcec.ParsePubKey(pubKey); err != nil {
		return "", fmt.Errorf("%w: %v", cryptointf.ErrDecode, err)
	}
	return Encode(hash.Hash160(pubKey), version), nil
}

// Encode 对 20 字节哈希做 base58check 编码
func Encode(pubKeyHash []byte, version byte) string {
	return base58.CheckEncode(pubKeyHash, version)
}

// Decode 解码地址，返回 hash160 与版本字节
func Decode(addr string) ([]byte, byte, error) {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return nil, 0, fmt.Errorf("%w: %s", cryptointf.ErrChecksumMismatch, addr)
		}
		return nil, 0, fmt.Errorf("%w: %v", cryptointf.ErrDecode, err)
	}
	if len(payload) != AddressHashLength {
		return nil, 0, fmt.Errorf("%w: address payload expected %d bytes, got %d",
			cryptointf.ErrDecode, AddressHashLength, len(payload))
	}
	return payload, version, nil
}

// ToBinary 地址转 21 字节二进制形式
func ToBinary(addr string) ([BinaryLength]byte, error) {
	var out [BinaryLength]byte
	payload, version, err := Decode(addr)
	if err != nil {
		return out, err
	}
	out[0] = version
	copy(out[1:], payload)
	return out, nil
}

// FromBinary 21 字节二进制形式转地址
func FromBinary(bin []byte) (string, error) {
	if len(bin) != BinaryLength {
		return "", fmt.Errorf("%w: binary address expected %d bytes, got %d",
			cryptointf.ErrDecode, BinaryLength, len(bin))
	}
	return Encode(bin[1:], bin[0]), nil
}
