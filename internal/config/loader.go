package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/weisyn/securemsg/pkg/interfaces/config"
	"github.com/weisyn/securemsg/pkg/types"
)

// appOptions AppOptions 的简单实现
type appOptions struct {
	appConfig *types.AppConfig
}

// GetAppConfig 获取应用配置
func (o *appOptions) GetAppConfig() *types.AppConfig {
	return o.appConfig
}

// NewAppOptions 包装已解析的应用配置
func NewAppOptions(appConfig *types.AppConfig) config.AppOptions {
	return &appOptions{appConfig: appConfig}
}

// LoadAppConfig 读取配置文件
// .yaml/.yml 按 YAML 解析，其余按 JSON 解析；path 为空时返回空配置
func LoadAppConfig(path string) (*types.AppConfig, error) {
	appConfig := &types.AppConfig{}
	if path == "" {
		return appConfig, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, appConfig)
	default:
		err = json.Unmarshal(data, appConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
	}

	if err := ValidateAppConfig(appConfig); err != nil {
		return nil, err
	}
	return appConfig, nil
}
