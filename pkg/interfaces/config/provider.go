package config

import (
	logconfig "github.com/weisyn/securemsg/internal/config/log"
	securemsgconfig "github.com/weisyn/securemsg/internal/config/securemsg"
	"github.com/weisyn/securemsg/pkg/types"
)

// Provider 配置提供者接口
// 各组件通过它获取已应用默认值的完整配置
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetSecureMessage 获取签名与安全消息配置
	GetSecureMessage() *securemsgconfig.Config

	// GetEnvironment 获取运行环境：dev | test | prod，未配置或无效时为 prod
	GetEnvironment() string

	// GetAppConfig 获取原始应用配置
	GetAppConfig() *types.AppConfig
}
