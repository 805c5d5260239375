package securemsg

// 签名与安全消息配置默认值
const (
	// defaultNetwork 默认主网地址版本
	defaultNetwork = "mainnet"

	// defaultMnemonicEnv 助记词环境变量
	defaultMnemonicEnv = "SECUREMSG_MNEMONIC"

	// defaultPassphraseEnv BIP39 口令环境变量
	defaultPassphraseEnv = "SECUREMSG_PASSPHRASE"

	// defaultEncoding CLI 二进制输出编码
	defaultEncoding = "hex"

	// defaultAccount BIP44 账户序号
	defaultAccount = 0
)

// supportedEncodings CLI 支持的编码
var supportedEncodings = map[string]bool{
	"hex":    true,
	"base64": true,
	"base58": true,
}
