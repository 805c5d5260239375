package wallet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// BIP44 相关常量
const (
	// BIP44Purpose BIP44 标准的 purpose 值
	BIP44Purpose uint32 = 44

	// HardenedOffset 硬化派生偏移量
	HardenedOffset uint32 = hdkeychain.HardenedKeyStart

	// DefaultAccount 默认账户索引
	DefaultAccount uint32 = 0

	// ExternalChain 外部链（用于接收地址）
	ExternalChain uint32 = 0

	// InternalChain 内部链（用于找零地址）
	InternalChain uint32 = 1

	// MaxPathDepth BIP32 深度字段为一个字节
	MaxPathDepth = 255
)

// ErrInvalidPath 派生路径格式错误
var ErrInvalidPath = errors.New("invalid derivation path")

// DerivationPath BIP32 派生路径，每个元素已包含硬化偏移
type DerivationPath []uint32

// ParseDerivationPath 解析派生路径字符串
//
// 支持 m、m/0'/1、44h/0H/0'/0/0 等形式，硬化标记可以是 ' h H。
func ParseDerivationPath(path string) (DerivationPath, error) {
	path = strings.TrimSpace(path)
	switch {
	case path == "" || path == "m" || path == "M":
		return DerivationPath{}, nil
	case strings.HasPrefix(path, "m/"), strings.HasPrefix(path, "M/"):
		path = path[2:]
	}

	parts := strings.Split(path, "/")
	if len(parts) > MaxPathDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds %d", ErrInvalidPath, len(parts), MaxPathDepth)
	}

	dp := make(DerivationPath, 0, len(parts))
	for i, part := range parts {
		index, err := parsePathComponent(part)
		if err != nil {
			return nil, fmt.Errorf("%w: component %d: %v", ErrInvalidPath, i+1, err)
		}
		dp = append(dp, index)
	}
	return dp, nil
}

// parsePathComponent 解析路径组件
func parsePathComponent(component string) (uint32, error) {
	hardened := false
	if n := len(component); n > 0 {
		switch component[n-1] {
		case '\'', 'h', 'H':
			hardened = true
			component = component[:n-1]
		}
	}

	value, err := strconv.ParseUint(component, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", component)
	}
	if value >= uint64(HardenedOffset) {
		return 0, fmt.Errorf("index %d out of range", value)
	}

	index := uint32(value)
	if hardened {
		index += HardenedOffset
	}
	return index, nil
}

// String 返回规范的路径字符串，硬化组件使用 '
func (dp DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, index := range dp {
		b.WriteByte('/')
		if index >= HardenedOffset {
			b.WriteString(strconv.FormatUint(uint64(index-HardenedOffset), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(index), 10))
		}
	}
	return b.String()
}

// BIP44Path 返回 m/44'/coin'/account'/change/index
func BIP44Path(net *chaincfg.Params, account, change, index uint32) DerivationPath {
	if net == nil {
		net = &chaincfg.MainNetParams
	}
	return DerivationPath{
		BIP44Purpose + HardenedOffset,
		net.HDCoinType + HardenedOffset,
		account + HardenedOffset,
		change,
		index,
	}
}

// DefaultPath 网络的第一个接收地址路径
func DefaultPath(net *chaincfg.Params) string {
	return BIP44Path(net, DefaultAccount, ExternalChain, 0).String()
}
