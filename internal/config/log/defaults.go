package log

import (
	"go.uber.org/zap/zapcore"
)

// 日志配置默认值
const (
	// === 基础日志配置 ===

	// defaultLogLevel 默认日志级别
	defaultLogLevel = "info"

	// defaultToConsole 默认输出到控制台
	defaultToConsole = true

	// defaultConsoleOutput 控制台输出目标
	// CLI 的标准输出用于结果，日志一律写到 stderr
	defaultConsoleOutput = "stderr"

	// defaultFilePath 默认不写文件
	defaultFilePath = ""

	// === 日志轮转配置 ===

	// defaultMaxSize 单个日志文件最大大小(MB)
	defaultMaxSize = 100

	// defaultMaxBackups 最大备份文件数
	defaultMaxBackups = 10

	// defaultMaxAge 日志文件最大保留天数
	defaultMaxAge = 30

	// defaultCompress 默认压缩历史日志
	defaultCompress = true

	// === 调试配置 ===

	// defaultEnableCaller 默认启用调用者信息
	defaultEnableCaller = true

	// defaultEnableStacktrace 默认对Error级别启用堆栈跟踪
	defaultEnableStacktrace = false
)

// 默认的日志级别映射
var defaultLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"panic": zapcore.PanicLevel,
	"fatal": zapcore.FatalLevel,
}
