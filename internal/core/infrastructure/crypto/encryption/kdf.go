package encryption

import (
	"crypto/sha256"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/weisyn/securemsg/internal/core/infrastructure/metrics"
)

const (
	// KDFSalt 密钥派生盐前缀，后接临时公钥
	KDFSalt = "Bitcoin Secure Message"
	// KDFIterations PBKDF2 迭代次数
	KDFIterations = 2048

	aesKeyLength  = 32
	hmacKeyLength = 32
	ivLength      = 16
	kdfOutput     = aesKeyLength + hmacKeyLength + ivLength
)

// sessionKeys 由共享秘密派生的会话密钥
type sessionKeys struct {
	raw     []byte
	aesKey  []byte
	hmacKey []byte
	iv      []byte
}

// deriveKeys PBKDF2-HMAC-SHA256(secret, salt||noncePub) 并切分为 aes_key || hmac_key || iv
func deriveKeys(secret, noncePub []byte) *sessionKeys {
	defer metrics.ObserveKDF(time.Now())

	salt := make([]byte, 0, len(KDFSalt)+len(noncePub))
	salt = append(salt, KDFSalt...)
	salt = append(salt, noncePub...)

	raw := pbkdf2.Key(secret, salt, KDFIterations, kdfOutput, sha256.New)
	return &sessionKeys{
		raw:     raw,
		aesKey:  raw[:aesKeyLength],
		hmacKey: raw[aesKeyLength : aesKeyLength+hmacKeyLength],
		iv:      raw[aesKeyLength+hmacKeyLength:],
	}
}

// wipe 清零密钥材料
func (k *sessionKeys) wipe() {
	clear(k.raw)
}
