package wallet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		wantErr  bool
	}{
		{"valid 12 words", testMnemonic, false},
		{"extra whitespace and case", "  Abandon abandon\tabandon abandon abandon abandon abandon abandon abandon abandon abandon ABOUT\n", false},
		{"empty mnemonic", "", true},
		{"invalid word count", "abandon abandon abandon", true},
		{"invalid word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon invalidword", true},
		{"wrong checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMnemonic(tt.mnemonic)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMnemonic)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMnemonicToSeed(t *testing.T) {
	// BIP39 官方向量，口令 TREZOR
	seed, err := MnemonicToSeed(testMnemonic, "TREZOR")
	require.NoError(t, err)
	assert.Equal(t,
		"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		hex.EncodeToString(seed))

	plain, err := MnemonicToSeed(testMnemonic, "")
	require.NoError(t, err)
	assert.Len(t, plain, 64)
	assert.NotEqual(t, seed, plain, "口令不同种子应不同")

	_, err = MnemonicToSeed("abandon", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}
