// Package wallet 提供签名与安全消息使用的密钥提供者
//
// HDKeyring 由 BIP39 助记词派生 BIP32 密钥，StaticKey 持有单个私钥。
// 两者都实现 crypto.KeyProvider。
package wallet

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"
)

// ErrInvalidMnemonic 助记词无效
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// validWordCounts BIP39 允许的单词数量
var validWordCounts = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// wordSet BIP39 英文词表
var wordSet = sync.OnceValue(func() map[string]bool {
	words := bip39.GetWordList()
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
})

// NormalizeMnemonic 去除首尾空白并把连续空白合并为单个空格
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// ValidateMnemonic 检查单词数量、词表与校验和
func ValidateMnemonic(mnemonic string) error {
	mnemonic = NormalizeMnemonic(mnemonic)
	if mnemonic == "" {
		return fmt.Errorf("%w: empty", ErrInvalidMnemonic)
	}

	words := strings.Split(mnemonic, " ")
	if !validWordCounts[len(words)] {
		return fmt.Errorf("%w: %d words, want 12, 15, 18, 21 or 24", ErrInvalidMnemonic, len(words))
	}
	set := wordSet()
	for i, w := range words {
		if !set[w] {
			return fmt.Errorf("%w: word %d not in BIP39 wordlist", ErrInvalidMnemonic, i+1)
		}
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return fmt.Errorf("%w: checksum mismatch", ErrInvalidMnemonic)
	}
	return nil
}

// MnemonicToSeed 校验助记词后生成 64 字节种子（PBKDF2-HMAC-SHA512）
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return bip39.NewSeed(NormalizeMnemonic(mnemonic), passphrase), nil
}
