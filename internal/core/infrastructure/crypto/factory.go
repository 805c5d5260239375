// Package crypto 提供签名与安全消息服务的装配
package crypto

import (
	securemsgconfig "github.com/weisyn/securemsg/internal/config/securemsg"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/encryption"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/entropy"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/kms"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/secp256k1"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/signature"
	infralog "github.com/weisyn/securemsg/internal/core/infrastructure/log"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/log"
)

// ServiceInput 定义加密服务工厂的输入参数
type ServiceInput struct {
	SecureMessageConfig *securemsgconfig.Config
	Logger              log.Logger
	// Entropy 为空时使用系统随机源
	Entropy crypto.EntropySource
}

// ServiceOutput 定义加密服务工厂的输出结果
type ServiceOutput struct {
	Curve                secp256k1.Arithmetic
	EntropySource        crypto.EntropySource
	SignatureManager     crypto.SignatureManager
	SecureMessageManager crypto.SecureMessageManager
	MnemonicProvider     *kms.EnvMnemonicProvider
}

// CreateCryptoServices 创建加密服务
//
// 签名服务与安全消息服务共享同一曲线实现；安全消息服务依赖签名服务
// 完成信封内的签名与验证。
func CreateCryptoServices(input ServiceInput) (ServiceOutput, error) {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "crypto")
	} else {
		logger = infralog.NewNopLogger()
	}

	cfg := input.SecureMessageConfig
	if cfg == nil {
		cfg = securemsgconfig.New(nil)
	}
	if err := cfg.Validate(); err != nil {
		return ServiceOutput{}, err
	}

	source := input.Entropy
	if source == nil {
		source = entropy.NewSystemSource()
	}

	curve := secp256k1.NewCurve()
	sigService := signature.NewSignatureService(curve, logger)
	secureMessage := encryption.NewSecureMessageService(curve, sigService, source, logger)

	logger.Debugf("加密模块初始化完成: network=%s", cfg.GetOptions().Network)

	return ServiceOutput{
		Curve:                curve,
		EntropySource:        source,
		SignatureManager:     sigService,
		SecureMessageManager: secureMessage,
		MnemonicProvider:     kms.NewEnvMnemonicProvider(cfg, logger),
	}, nil
}
