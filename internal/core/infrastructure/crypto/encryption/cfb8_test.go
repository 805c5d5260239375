package encryption

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestCFB8Vectors NIST SP 800-38A F.3.7 / F.3.11（前 18 字节）
func TestCFB8Vectors(t *testing.T) {
	iv := "000102030405060708090a0b0c0d0e0f"
	plaintext := "6bc1bee22e409f96e93d7e117393172aae2d"

	tests := []struct {
		name       string
		key        string
		ciphertext string
	}{
		{"AES-128", "2b7e151628aed2a6abf7158809cf4f3c", "3b79424c9c0dd436bace9e0ed4586a4f32b9"},
		{"AES-256", "603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4", "dc1f1a8520a64db55fcc8ac554844e889700"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := aes.NewCipher(mustHex(t, tt.key))
			require.NoError(t, err)

			pt := mustHex(t, plaintext)
			ct := make([]byte, len(pt))
			NewCFB8Encrypter(block, mustHex(t, iv)).XORKeyStream(ct, pt)
			assert.Equal(t, tt.ciphertext, hex.EncodeToString(ct))

			back := make([]byte, len(ct))
			NewCFB8Decrypter(block, mustHex(t, iv)).XORKeyStream(back, ct)
			assert.Equal(t, pt, back)
		})
	}
}

// TestCFB8Streaming 分段处理与一次处理结果一致，且支持原地加密
func TestCFB8Streaming(t *testing.T) {
	block, err := aes.NewCipher(bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)
	iv := bytes.Repeat([]byte{9}, 16)
	data := bytes.Repeat([]byte("streaming "), 13)

	whole := make([]byte, len(data))
	NewCFB8Encrypter(block, iv).XORKeyStream(whole, data)

	parts := append([]byte(nil), data...)
	stream := NewCFB8Encrypter(block, iv)
	stream.XORKeyStream(parts[:5], parts[:5])
	stream.XORKeyStream(parts[5:], parts[5:])
	assert.Equal(t, whole, parts)

	inPlace := append([]byte(nil), whole...)
	NewCFB8Decrypter(block, iv).XORKeyStream(inPlace, inPlace)
	assert.Equal(t, data, inPlace)
}

func TestCFB8BadIV(t *testing.T) {
	block, err := aes.NewCipher(make([]byte, 32))
	require.NoError(t, err)
	assert.Panics(t, func() { NewCFB8Encrypter(block, make([]byte, 8)) })
}
