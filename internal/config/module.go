// Package config 提供应用配置管理功能
package config

import (
	logconfig "github.com/weisyn/securemsg/internal/config/log"
	securemsgconfig "github.com/weisyn/securemsg/internal/config/securemsg"
	"github.com/weisyn/securemsg/pkg/interfaces/config"
	"github.com/weisyn/securemsg/pkg/types"
	"go.uber.org/fx"
)

// ConfigParams 定义配置模块的依赖参数
type ConfigParams struct {
	fx.In

	// 应用配置选项
	AppOptions config.AppOptions `optional:"true"`
}

// ConfigOutput 定义配置模块的输出结构
type ConfigOutput struct {
	fx.Out

	// 配置提供者
	Provider config.Provider
}

// Module 返回配置模块
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			ProvideConfigServices,
			// 提供具体的配置类型用于依赖注入
			func(provider config.Provider) *logconfig.LogOptions {
				return provider.GetLog()
			},
			func(provider config.Provider) *securemsgconfig.Config {
				return provider.GetSecureMessage()
			},
		),
	)
}

// ProvideConfigServices 提供配置服务
func ProvideConfigServices(params ConfigParams) (ConfigOutput, error) {
	var appConfig *types.AppConfig
	if params.AppOptions != nil {
		appConfig = params.AppOptions.GetAppConfig()
	}

	if err := ValidateAppConfig(appConfig); err != nil {
		return ConfigOutput{}, err
	}

	return ConfigOutput{
		Provider: NewProvider(appConfig),
	}, nil
}
