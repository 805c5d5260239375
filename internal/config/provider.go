package config

import (
	"strings"

	"github.com/weisyn/securemsg/internal/config/log"
	"github.com/weisyn/securemsg/internal/config/securemsg"
	"github.com/weisyn/securemsg/pkg/interfaces/config"
	"github.com/weisyn/securemsg/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	// 直接传递用户日志配置给log.New，让它处理默认值和转换
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}
	return log.New(userLogConfig).GetOptions()
}

// GetSecureMessage 获取签名与安全消息配置
func (p *Provider) GetSecureMessage() *securemsg.Config {
	var userConfig *types.UserSecureMessageConfig
	if p.appConfig != nil {
		userConfig = p.appConfig.SecureMessage
	}
	return securemsg.New(userConfig)
}

// GetEnvironment 获取运行环境，未配置或无效时返回 prod
func (p *Provider) GetEnvironment() string {
	if p.appConfig == nil || p.appConfig.Environment == nil {
		return "prod"
	}
	switch env := strings.ToLower(strings.TrimSpace(*p.appConfig.Environment)); env {
	case "dev", "test", "prod":
		return env
	default:
		return "prod"
	}
}

// GetAppConfig 获取原始应用配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}
