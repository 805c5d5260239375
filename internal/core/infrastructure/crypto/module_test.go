package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/weisyn/securemsg/client/core/wallet"
	securemsgconfig "github.com/weisyn/securemsg/internal/config/securemsg"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/kms"
	infralog "github.com/weisyn/securemsg/internal/core/infrastructure/log"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/securemsg/pkg/types"
)

const masterKeyHex = "e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35"

func staticRef(t *testing.T, net *chaincfg.Params) crypto.KeyRef {
	t.Helper()
	raw, err := hex.DecodeString(masterKeyHex)
	require.NoError(t, err)
	key, err := wallet.NewStaticKey(raw)
	require.NoError(t, err)
	return crypto.KeyRef{Provider: key, Network: net}
}

// TestModule 测试 fx 注入与服务协作
func TestModule(t *testing.T) {
	var (
		sigManager    crypto.SignatureManager
		secureMessage crypto.SecureMessageManager
		source        crypto.EntropySource
		provider      *kms.EnvMnemonicProvider
	)

	app := fxtest.New(t,
		fx.Supply(securemsgconfig.New(nil)),
		fx.Provide(func() log.Logger { return infralog.NewNopLogger() }),
		Module(),
		fx.Populate(&sigManager, &secureMessage, &source, &provider),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, provider)

	buf, err := source.RandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, buf, 32)

	ref := staticRef(t, &chaincfg.MainNetParams)
	addr, sig, err := sigManager.SignWithKey(ref, []byte("Hello, World!"))
	require.NoError(t, err)
	assert.Equal(t, "15mKKb2eos1hWa6tisdPwwDC1a5J1y9nma", addr)

	_, err = sigManager.Verify(addr, sig, []byte("Hello, World!"))
	require.NoError(t, err)

	pub, err := ref.Provider.PublicKey("")
	require.NoError(t, err)
	blob, err := secureMessage.Encrypt(pub.SerializeCompressed(), []byte("ping"), false, &ref)
	require.NoError(t, err)

	msg, err := secureMessage.Decrypt(ref, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), msg.Message)
	assert.Equal(t, addr, msg.Address)
}

// TestModuleWithoutLogger 日志为可选依赖
func TestModuleWithoutLogger(t *testing.T) {
	var secureMessage crypto.SecureMessageManager

	app := fxtest.New(t,
		fx.Supply(securemsgconfig.New(nil)),
		Module(),
		fx.Populate(&secureMessage),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.NotNil(t, secureMessage)
}

func TestCreateCryptoServicesInvalidConfig(t *testing.T) {
	cfg := securemsgconfig.New(&types.UserSecureMessageConfig{Network: types.StringPtr("dogecoin")})
	_, err := CreateCryptoServices(ServiceInput{SecureMessageConfig: cfg})
	assert.Error(t, err)
}

// TestCreateCryptoServicesEntropy 注入的熵源用于临时密钥
func TestCreateCryptoServicesEntropy(t *testing.T) {
	out, err := CreateCryptoServices(ServiceInput{Entropy: zeroEntropy{}})
	require.NoError(t, err)

	ref := staticRef(t, nil)
	pub, err := ref.Provider.PublicKey("")
	require.NoError(t, err)

	_, err = out.SecureMessageManager.Encrypt(pub.SerializeCompressed(), []byte("x"), false, nil)
	assert.ErrorIs(t, err, crypto.ErrSigningFailed)
}

type zeroEntropy struct{}

func (zeroEntropy) RandomBytes(n int) ([]byte, error) { return make([]byte, n), nil }
