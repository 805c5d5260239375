package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/weisyn/securemsg/client/core/output"
	"github.com/weisyn/securemsg/client/core/wallet"
	appconfig "github.com/weisyn/securemsg/internal/config"
	securemsgconfig "github.com/weisyn/securemsg/internal/config/securemsg"
	cryptomodule "github.com/weisyn/securemsg/internal/core/infrastructure/crypto"
	"github.com/weisyn/securemsg/internal/core/infrastructure/crypto/kms"
	infralog "github.com/weisyn/securemsg/internal/core/infrastructure/log"
	iconfig "github.com/weisyn/securemsg/pkg/interfaces/config"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/securemsg/pkg/types"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigPath string // 配置文件
	Network    string // 地址网络
	Path       string // 派生路径
	Encoding   string // 签名与密文编码
	Output     string // 输出格式
	WIF        string // 单个私钥（WIF），设置后不读取助记词
	Verbose    bool   // 调试日志
	Opaque     bool   // 子命令失败统一为同一条信息
}

// services 通过 fx 装配的运行时服务
type services struct {
	fx.In

	Config        *securemsgconfig.Config
	Logger        log.Logger
	Signature     crypto.SignatureManager
	SecureMessage crypto.SecureMessageManager
	Mnemonic      *kms.EnvMnemonicProvider
}

// cli 单次命令执行的上下文
type cli struct {
	flags GlobalFlags
	svc   services
	app   *fx.App
	net   *chaincfg.Params
	codec blobCodec
	out   *output.Formatter
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "securemsg",
		Short: "消息签名与点对点安全消息",
		Long: `securemsg - 可恢复 ECDSA 消息签名与 ECIES 安全消息工具

签名格式与 Bitcoin Core signmessage 兼容；安全消息使用临时 ECDH、
PBKDF2、AES-256-CFB8 与截断 HMAC，可选附带发送方签名。

密钥来源:
  环境变量 SECUREMSG_MNEMONIC / SECUREMSG_PASSPHRASE（可在配置中改名）
  或 --wif 指定的单个私钥`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.start(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.stop(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.flags.ConfigPath, "config", "c", "", "配置文件 (.json|.yaml)")
	flags.StringVar(&c.flags.Network, "network", "", "地址网络: mainnet|testnet3|regtest|simnet|signet")
	flags.StringVar(&c.flags.Path, "path", "", "BIP32 派生路径 (默认 m/44'/<coin>'/0'/0/0)")
	flags.StringVarP(&c.flags.Encoding, "encoding", "e", "", "签名与密文编码: hex|base64|base58")
	flags.StringVarP(&c.flags.Output, "output", "o", "text", "输出格式: text|json|pretty|table")
	flags.StringVar(&c.flags.WIF, "wif", "", "使用 WIF 私钥代替助记词")
	flags.BoolVarP(&c.flags.Verbose, "verbose", "v", false, "输出调试日志")
	flags.BoolVar(&c.flags.Opaque, "opaque-errors", false, "不区分失败原因，统一返回 request rejected")

	rootCmd.AddCommand(
		newAddressCmd(c),
		newSignCmd(c),
		newSignDigestCmd(c),
		newVerifyCmd(c),
		newEncryptCmd(c),
		newDecryptCmd(c),
	)
	for _, sub := range rootCmd.Commands() {
		if sub.RunE != nil {
			sub.RunE = c.opaque(sub.RunE)
		}
	}
	return rootCmd
}

// opaque 启用 --opaque-errors 时折叠子命令的失败原因
//
// 只作用于子命令本身，参数与配置错误仍按原样报告。
func (c *cli) opaque(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil && c.flags.Opaque {
			c.svc.Logger.Debugf("子命令失败: %v", err)
			return crypto.Opaque(err)
		}
		return err
	}
}

// start 加载配置并通过 fx 装配服务
func (c *cli) start(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := output.ParseFormat(c.flags.Output)
	if err != nil {
		return &usageError{err}
	}
	c.out = output.NewFormatter(format, cmd.OutOrStdout())

	appConfig, err := appconfig.LoadAppConfig(c.flags.ConfigPath)
	if err != nil {
		return &usageError{err}
	}
	c.applyFlags(appConfig)

	c.app = fx.New(
		fx.NopLogger,
		fx.Provide(func() iconfig.AppOptions { return appconfig.NewAppOptions(appConfig) }),
		appconfig.Module(),
		infralog.Module(),
		cryptomodule.Module(),
		fx.Populate(&c.svc),
	)
	if err = c.app.Err(); err != nil {
		return &usageError{err}
	}
	if err = c.app.Start(ctx); err != nil {
		return err
	}

	if c.net, err = c.svc.Config.GetNetParams(); err != nil {
		return &usageError{err}
	}
	if c.codec, err = parseCodec(c.svc.Config.GetEncoding()); err != nil {
		return err
	}
	return nil
}

func (c *cli) stop(ctx context.Context) error {
	if c.app == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_ = c.svc.Logger.Sync()
	return c.app.Stop(ctx)
}

// applyFlags 命令行标志覆盖配置文件
func (c *cli) applyFlags(appConfig *types.AppConfig) {
	if appConfig.SecureMessage == nil {
		appConfig.SecureMessage = &types.UserSecureMessageConfig{}
	}
	sm := appConfig.SecureMessage
	if c.flags.Network != "" {
		sm.Network = types.StringPtr(c.flags.Network)
		// 网络变化时默认路径随之变化，除非显式给出
		if c.flags.Path == "" {
			sm.DefaultPath = nil
		}
	}
	if c.flags.Path != "" {
		sm.DefaultPath = types.StringPtr(c.flags.Path)
	}
	if c.flags.Encoding != "" {
		sm.Encoding = types.StringPtr(c.flags.Encoding)
	}

	if appConfig.Log == nil {
		appConfig.Log = &types.UserLogConfig{}
	}
	if c.flags.Verbose {
		appConfig.Log.Level = types.StringPtr("debug")
	} else if appConfig.Log.Level == nil {
		appConfig.Log.Level = types.StringPtr("warn")
	}
}

// keyRef 构建本次调用的密钥上下文
func (c *cli) keyRef(ctx context.Context) (crypto.KeyRef, error) {
	ref := crypto.KeyRef{Path: c.svc.Config.GetDefaultPath(), Network: c.net}

	if c.flags.WIF != "" {
		key, err := wallet.NewStaticKeyFromWIF(c.flags.WIF)
		if err != nil {
			return crypto.KeyRef{}, err
		}
		ref.Provider = key
		return ref, nil
	}

	keyring, err := c.svc.Mnemonic.Load(ctx)
	if err != nil {
		return crypto.KeyRef{}, err
	}
	ref.Provider = keyring
	return ref, nil
}

// readMessage 参数为 "-" 时从标准输入读取
func readMessage(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("读取标准输入失败: %w", err)
	}
	return []byte(strings.TrimSuffix(string(data), "\n")), nil
}
