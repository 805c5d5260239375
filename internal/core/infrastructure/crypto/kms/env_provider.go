// Package kms 提供密钥材料的外部来源
//
// EnvMnemonicProvider 从环境变量读取助记词与 BIP39 口令并构建 HD 密钥环，
// 用于 CLI 与单机部署；密钥材料不经过配置文件。
package kms

import (
	"context"
	"fmt"
	"os"

	"github.com/weisyn/securemsg/client/core/wallet"
	securemsgconfig "github.com/weisyn/securemsg/internal/config/securemsg"
	infralog "github.com/weisyn/securemsg/internal/core/infrastructure/log"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/log"
)

// EnvMnemonicProvider 环境变量助记词提供者
type EnvMnemonicProvider struct {
	mnemonicEnv   string
	passphraseEnv string
	logger        log.Logger
}

// NewEnvMnemonicProvider 按配置中的环境变量名创建提供者
func NewEnvMnemonicProvider(cfg *securemsgconfig.Config, logger log.Logger) *EnvMnemonicProvider {
	if cfg == nil {
		cfg = securemsgconfig.New(nil)
	}
	if logger == nil {
		logger = infralog.NewNopLogger()
	}
	return &EnvMnemonicProvider{
		mnemonicEnv:   cfg.GetMnemonicEnv(),
		passphraseEnv: cfg.GetPassphraseEnv(),
		logger:        logger,
	}
}

// Load 读取环境变量并返回已加载种子的密钥环
//
// 助记词变量未设置或为空时返回 ErrKeyUnavailable；口令变量可选。
func (p *EnvMnemonicProvider) Load(ctx context.Context) (*wallet.HDKeyring, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	mnemonic, ok := os.LookupEnv(p.mnemonicEnv)
	if !ok || mnemonic == "" {
		return nil, fmt.Errorf("%w: environment variable %s not set", crypto.ErrKeyUnavailable, p.mnemonicEnv)
	}
	passphrase := os.Getenv(p.passphraseEnv)

	keyring := wallet.NewHDKeyring(p.logger)
	if err := keyring.LoadMnemonic(mnemonic, passphrase); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", crypto.ErrKeyUnavailable, p.mnemonicEnv, err)
	}

	p.logger.Debugf("已从环境变量 %s 加载助记词", p.mnemonicEnv)
	return keyring, nil
}
