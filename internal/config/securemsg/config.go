// Package securemsg 提供签名与安全消息的配置选项
package securemsg

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/address"
	configtypes "github.com/weisyn/securemsg/pkg/types"
)

// SecureMessageOptions 签名与安全消息配置选项
type SecureMessageOptions struct {
	Network       string `json:"network" yaml:"network"`
	DefaultPath   string `json:"default_path" yaml:"default_path"`
	MnemonicEnv   string `json:"mnemonic_env" yaml:"mnemonic_env"`
	PassphraseEnv string `json:"passphrase_env" yaml:"passphrase_env"`
	Encoding      string `json:"encoding" yaml:"encoding"`
}

// Config 签名与安全消息配置实现
type Config struct {
	options *SecureMessageOptions
}

// New 创建配置，userConfig 为 nil 时使用默认值
func New(userConfig *configtypes.UserSecureMessageConfig) *Config {
	options := createDefaultOptions()
	applyUserConfig(options, userConfig)
	if options.DefaultPath == "" {
		options.DefaultPath = bip44Path(options.Network)
	}
	return &Config{options: options}
}

func createDefaultOptions() *SecureMessageOptions {
	return &SecureMessageOptions{
		Network:       defaultNetwork,
		MnemonicEnv:   defaultMnemonicEnv,
		PassphraseEnv: defaultPassphraseEnv,
		Encoding:      defaultEncoding,
	}
}

func applyUserConfig(options *SecureMessageOptions, user *configtypes.UserSecureMessageConfig) {
	if user == nil {
		return
	}
	if user.Network != nil {
		options.Network = strings.ToLower(strings.TrimSpace(*user.Network))
	}
	if user.DefaultPath != nil {
		options.DefaultPath = strings.TrimSpace(*user.DefaultPath)
	}
	if user.MnemonicEnv != nil && *user.MnemonicEnv != "" {
		options.MnemonicEnv = *user.MnemonicEnv
	}
	if user.PassphraseEnv != nil && *user.PassphraseEnv != "" {
		options.PassphraseEnv = *user.PassphraseEnv
	}
	if user.Encoding != nil {
		options.Encoding = strings.ToLower(strings.TrimSpace(*user.Encoding))
	}
}

// bip44Path 网络对应的第一个接收地址路径
func bip44Path(network string) string {
	coin := chaincfg.MainNetParams.HDCoinType
	if net, err := address.NetworkByName(network); err == nil {
		coin = net.HDCoinType
	}
	return fmt.Sprintf("m/44'/%d'/%d'/0/0", coin, defaultAccount)
}

// Validate 校验网络与编码
func (c *Config) Validate() error {
	if _, err := address.NetworkByName(c.options.Network); err != nil {
		return fmt.Errorf("secure_message.network: %w", err)
	}
	if !supportedEncodings[c.options.Encoding] {
		return fmt.Errorf("secure_message.encoding: unsupported %q", c.options.Encoding)
	}
	return nil
}

// GetOptions 获取完整的配置选项
func (c *Config) GetOptions() *SecureMessageOptions {
	return c.options
}

// GetNetParams 解析网络参数，未知网络返回错误
func (c *Config) GetNetParams() (*chaincfg.Params, error) {
	return address.NetworkByName(c.options.Network)
}

// GetDefaultPath 默认派生路径
func (c *Config) GetDefaultPath() string {
	return c.options.DefaultPath
}

// GetMnemonicEnv 助记词环境变量名
func (c *Config) GetMnemonicEnv() string {
	return c.options.MnemonicEnv
}

// GetPassphraseEnv 口令环境变量名
func (c *Config) GetPassphraseEnv() string {
	return c.options.PassphraseEnv
}

// GetEncoding CLI 二进制编码
func (c *Config) GetEncoding() string {
	return c.options.Encoding
}
