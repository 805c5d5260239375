// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty" yaml:"app_name,omitempty"` // 应用名称

	// Environment 运行环境：dev | test | prod
	Environment *string `json:"environment,omitempty" yaml:"environment,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// 签名与安全消息配置
	SecureMessage *UserSecureMessageConfig `json:"secure_message,omitempty" yaml:"secure_message,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含配置文件中实际出现的字段
type UserLogConfig struct {
	Level      *string `json:"level,omitempty" yaml:"level,omitempty"`             // 日志级别：debug, info, warn, error, fatal
	FilePath   *string `json:"file_path,omitempty" yaml:"file_path,omitempty"`     // 日志文件路径
	ToConsole  *bool   `json:"to_console,omitempty" yaml:"to_console,omitempty"`   // 是否输出到控制台
	MaxSize    *int    `json:"max_size,omitempty" yaml:"max_size,omitempty"`       // 单文件最大大小(MB)
	MaxBackups *int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"` // 最大备份数
}

// UserSecureMessageConfig 用户签名与安全消息配置
type UserSecureMessageConfig struct {
	// Network 地址网络：mainnet | testnet3 | regtest | simnet | signet
	Network *string `json:"network,omitempty" yaml:"network,omitempty"`

	// DefaultPath 默认派生路径，未设置时使用 BIP44 第一个接收地址
	DefaultPath *string `json:"default_path,omitempty" yaml:"default_path,omitempty"`

	// MnemonicEnv 助记词所在环境变量名
	MnemonicEnv *string `json:"mnemonic_env,omitempty" yaml:"mnemonic_env,omitempty"`

	// PassphraseEnv BIP39 口令所在环境变量名
	PassphraseEnv *string `json:"passphrase_env,omitempty" yaml:"passphrase_env,omitempty"`

	// Encoding CLI 输出的二进制编码：hex | base64 | base58
	Encoding *string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

// BoolPtr 创建bool指针，用于明确表示用户设置了该值
func BoolPtr(v bool) *bool {
	return &v
}

// IntPtr 创建int指针，用于明确表示用户设置了该值
func IntPtr(v int) *int {
	return &v
}

// StringPtr 创建string指针，用于明确表示用户设置了该值
func StringPtr(v string) *string {
	return &v
}
