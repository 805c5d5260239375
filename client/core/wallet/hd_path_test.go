package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		path      string
		want      DerivationPath
		canonical string
	}{
		{"m", DerivationPath{}, "m"},
		{"", DerivationPath{}, "m"},
		{"m/0'", DerivationPath{HardenedOffset}, "m/0'"},
		{"m/0'/1", DerivationPath{HardenedOffset, 1}, "m/0'/1"},
		{"M/44h/0H/0'/0/0", DerivationPath{44 + HardenedOffset, HardenedOffset, HardenedOffset, 0, 0}, "m/44'/0'/0'/0/0"},
		{"44'/1'/0'/1/7", DerivationPath{44 + HardenedOffset, 1 + HardenedOffset, HardenedOffset, 1, 7}, "m/44'/1'/0'/1/7"},
		{"m/2147483647", DerivationPath{2147483647}, "m/2147483647"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			dp, err := ParseDerivationPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dp)
			assert.Equal(t, tt.canonical, dp.String())
		})
	}
}

func TestParseDerivationPathRejects(t *testing.T) {
	for _, path := range []string{
		"m/",
		"m//1",
		"m/x",
		"m/-1",
		"m/1''",
		"m/2147483648",
		"m/4294967296",
		"x/0",
	} {
		t.Run(path, func(t *testing.T) {
			_, err := ParseDerivationPath(path)
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "m/44'/0'/0'/0/0", DefaultPath(&chaincfg.MainNetParams))
	assert.Equal(t, "m/44'/1'/0'/0/0", DefaultPath(&chaincfg.TestNet3Params))
	assert.Equal(t, "m/44'/0'/0'/0/0", DefaultPath(nil))
	assert.Equal(t, "m/44'/0'/3'/1/9", BIP44Path(nil, 3, InternalChain, 9).String())
}
