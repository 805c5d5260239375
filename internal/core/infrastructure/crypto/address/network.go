package address

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// NetworkByName 按名称查找网络参数
//
// 支持 mainnet、testnet3（别名 testnet）、regtest、simnet、signet。
func NetworkByName(name string) (*chaincfg.Params, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mainnet", "main":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3", "test":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "simnet":
		return &chaincfg.SimNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}

// Version 返回网络的 P2PKH 版本字节
func Version(net *chaincfg.Params) byte {
	if net == nil {
		return chaincfg.MainNetParams.PubKeyHashAddrID
	}
	return net.PubKeyHashAddrID
}
