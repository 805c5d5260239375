// securemsg 比特币风格消息签名与点对点安全消息命令行工具
//
// 密钥来自环境变量中的助记词（默认 SECUREMSG_MNEMONIC），或通过 --wif 指定的单个私钥。
//
// 示例：
//
//	securemsg address
//	securemsg sign "Hello, World!"
//	securemsg sign-digest <digest-hex>
//	securemsg verify <address> <signature> "Hello, World!"
//	securemsg encrypt --sign <recipient-pubkey-hex> "ping"
//	securemsg decrypt <blob>
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode 按错误类别映射退出码
func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		return 64
	}
	switch crypto.KindOf(err) {
	case crypto.KindDecode:
		return 2
	case crypto.KindCrypto:
		return 3
	case crypto.KindKeyUnavailable:
		return 4
	default:
		return 1
	}
}

// usageError 参数或配置错误
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }
