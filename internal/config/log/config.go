package log

import (
	"strings"

	configtypes "github.com/weisyn/securemsg/pkg/types"
	"go.uber.org/zap/zapcore"
)

// LogOptions 日志配置选项
type LogOptions struct {
	// === 基础配置 ===
	Level         string `json:"level" yaml:"level"`                   // 日志级别 (debug, info, warn, error, fatal)
	ToConsole     bool   `json:"to_console" yaml:"to_console"`         // 是否输出到控制台
	ConsoleOutput string `json:"console_output" yaml:"console_output"` // stdout | stderr
	FilePath      string `json:"file_path" yaml:"file_path"`           // 日志文件路径，为空时不写文件

	// === 基础轮转配置 ===
	MaxSize    int  `json:"max_size" yaml:"max_size"`       // 单个日志文件最大大小(MB)
	MaxBackups int  `json:"max_backups" yaml:"max_backups"` // 最大备份文件数
	MaxAge     int  `json:"max_age" yaml:"max_age"`         // 日志文件最大保留天数
	Compress   bool `json:"compress" yaml:"compress"`       // 是否压缩历史日志文件

	// === 调试配置 ===
	EnableCaller     bool `json:"enable_caller" yaml:"enable_caller"`         // 是否启用调用者信息
	EnableStacktrace bool `json:"enable_stacktrace" yaml:"enable_stacktrace"` // 是否启用堆栈跟踪

	// === 内部配置（不对外暴露） ===
	LevelMap map[string]zapcore.Level `json:"-" yaml:"-"` // 级别映射
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 创建日志配置实现
//
// userConfig 可以是 *configtypes.UserLogConfig（用户配置文件）或 *LogOptions（完整选项）。
func New(userConfig interface{}) *Config {
	// 1. 先创建完整的默认配置
	defaultOptions := createDefaultLogOptions()

	// 2. 如果有用户配置，应用用户配置覆盖默认值
	switch cfg := userConfig.(type) {
	case *configtypes.UserLogConfig:
		applyUserLogConfig(defaultOptions, cfg)
	case *LogOptions:
		if cfg != nil {
			defaultOptions = completeOptions(cfg)
		}
	}

	return &Config{
		options: defaultOptions,
	}
}

// NewFromProvider 从配置提供者创建日志配置
func NewFromProvider(provider interface{}) *Config {
	if p, ok := provider.(interface{ GetLog() *LogOptions }); ok && p.GetLog() != nil {
		return New(p.GetLog())
	}

	// 如果类型断言失败，回退到默认配置
	return New(nil)
}

// createDefaultLogOptions 创建默认日志配置
func createDefaultLogOptions() *LogOptions {
	return &LogOptions{
		Level:         defaultLogLevel,
		ToConsole:     defaultToConsole,
		ConsoleOutput: defaultConsoleOutput,
		FilePath:      defaultFilePath,

		MaxSize:    defaultMaxSize,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAge,
		Compress:   defaultCompress,

		EnableCaller:     defaultEnableCaller,
		EnableStacktrace: defaultEnableStacktrace,

		LevelMap: defaultLevelMap,
	}
}

// completeOptions 补齐直接传入的选项中缺失的字段
func completeOptions(in *LogOptions) *LogOptions {
	out := *in
	if out.Level == "" {
		out.Level = defaultLogLevel
	}
	if out.ConsoleOutput == "" {
		out.ConsoleOutput = defaultConsoleOutput
	}
	if out.MaxSize <= 0 {
		out.MaxSize = defaultMaxSize
	}
	if out.MaxBackups <= 0 {
		out.MaxBackups = defaultMaxBackups
	}
	if out.MaxAge <= 0 {
		out.MaxAge = defaultMaxAge
	}
	if out.LevelMap == nil {
		out.LevelMap = defaultLevelMap
	}
	return &out
}

// applyUserLogConfig 应用用户日志配置覆盖默认值
func applyUserLogConfig(options *LogOptions, logConfig *configtypes.UserLogConfig) {
	if logConfig == nil {
		return
	}
	// 只处理配置文件中实际出现的字段
	if logConfig.Level != nil {
		options.Level = strings.ToLower(*logConfig.Level)
	}
	if logConfig.FilePath != nil {
		options.FilePath = *logConfig.FilePath
		options.ToConsole = false // 指定文件路径时默认不输出到控制台
	}
	if logConfig.ToConsole != nil {
		options.ToConsole = *logConfig.ToConsole
	}
	if logConfig.MaxSize != nil {
		options.MaxSize = *logConfig.MaxSize
	}
	if logConfig.MaxBackups != nil {
		options.MaxBackups = *logConfig.MaxBackups
	}
}

// GetOptions 获取完整的日志配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// === 基础配置访问方法 ===

// GetLevel 获取日志级别
func (c *Config) GetLevel() string {
	return c.options.Level
}

// GetZapLevel 获取zap日志级别
func (c *Config) GetZapLevel() zapcore.Level {
	if level, exists := c.options.LevelMap[c.options.Level]; exists {
		return level
	}
	return zapcore.InfoLevel // 默认返回Info级别
}

// IsConsoleEnabled 是否启用控制台输出
func (c *Config) IsConsoleEnabled() bool {
	return c.options.ToConsole
}

// GetConsoleOutput 控制台输出目标
func (c *Config) GetConsoleOutput() string {
	return c.options.ConsoleOutput
}

// GetFilePath 获取日志文件路径
func (c *Config) GetFilePath() string {
	return c.options.FilePath
}

// === 日志轮转配置访问方法 ===

// GetMaxSize 获取单个文件最大大小(MB)
func (c *Config) GetMaxSize() int {
	return c.options.MaxSize
}

// GetMaxBackups 获取最大备份文件数
func (c *Config) GetMaxBackups() int {
	return c.options.MaxBackups
}

// GetMaxAge 获取最大保留天数
func (c *Config) GetMaxAge() int {
	return c.options.MaxAge
}

// IsCompressionEnabled 是否启用压缩
func (c *Config) IsCompressionEnabled() bool {
	return c.options.Compress
}

// === 调试配置访问方法 ===

// IsCallerEnabled 是否启用调用者信息
func (c *Config) IsCallerEnabled() bool {
	return c.options.EnableCaller
}

// IsStacktraceEnabled 是否启用堆栈跟踪
func (c *Config) IsStacktraceEnabled() bool {
	return c.options.EnableStacktrace
}

// === 编码器创建方法 ===

// CreateFileEncoder 创建文件编码器（JSON）
func (c *Config) CreateFileEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
	})
}

// CreateConsoleEncoder 创建控制台编码器
func (c *Config) CreateConsoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
	})
}
