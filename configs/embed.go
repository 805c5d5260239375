// Package configs 内置的示例配置
package configs

import _ "embed"

// EmbeddedConfigs 嵌入的配置文件内容
type EmbeddedConfigs struct {
	YAML []byte
	JSON []byte
}

//go:embed securemsg.example.yaml
var exampleYAML []byte

//go:embed securemsg.example.json
var exampleJSON []byte

// GetEmbeddedConfigs 获取所有嵌入的示例配置
func GetEmbeddedConfigs() *EmbeddedConfigs {
	return &EmbeddedConfigs{
		YAML: exampleYAML,
		JSON: exampleJSON,
	}
}

// GetExampleYAML 获取 YAML 示例配置
func GetExampleYAML() []byte {
	return exampleYAML
}

// GetExampleJSON 获取 JSON 示例配置
func GetExampleJSON() []byte {
	return exampleJSON
}
