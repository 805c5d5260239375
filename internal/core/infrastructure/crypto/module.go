package crypto

import (
	"go.uber.org/fx"

	securemsgconfig "github.com/weisyn/securemsg/internal/config/securemsg"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/kms"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/secp256k1"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/log"
)

// CryptoParams 定义加密模块的依赖参数
type CryptoParams struct {
	fx.In

	SecureMessageConfig *securemsgconfig.Config
	Logger              log.Logger `optional:"true"`
}

// CryptoOutput 定义加密模块的输出结构
type CryptoOutput struct {
	fx.Out

	Curve                secp256k1.Arithmetic
	EntropySource        crypto.EntropySource
	SignatureManager     crypto.SignatureManager
	SecureMessageManager crypto.SecureMessageManager
	MnemonicProvider     *kms.EnvMnemonicProvider
}

// Module 返回加密模块
func Module() fx.Option {
	return fx.Module("crypto",
		fx.Provide(ProvideCryptoServices),
	)
}

// ProvideCryptoServices 提供加密服务
func ProvideCryptoServices(params CryptoParams) (CryptoOutput, error) {
	out, err := CreateCryptoServices(ServiceInput{
		SecureMessageConfig: params.SecureMessageConfig,
		Logger:              params.Logger,
	})
	if err != nil {
		return CryptoOutput{}, err
	}

	return CryptoOutput{
		Curve:                out.Curve,
		EntropySource:        out.EntropySource,
		SignatureManager:     out.SignatureManager,
		SecureMessageManager: out.SecureMessageManager,
		MnemonicProvider:     out.MnemonicProvider,
	}, nil
}
