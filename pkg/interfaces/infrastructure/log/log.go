// Package log 定义签名与安全消息组件使用的日志接口
//
// 实现位于 internal/core/infrastructure/log，基于 zap。
// 密钥材料、明文与共享秘密不得写入日志。
package log

import "go.uber.org/zap"

// Logger 日志记录器
//
// With 的参数为交替的键值对；奇数个参数时忽略最后一个。
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})

	// Fatal 记录后退出进程
	Fatal(msg string)
	Fatalf(format string, args ...interface{})

	// With 返回附带字段的子记录器
	With(args ...interface{}) Logger

	// Sync 刷新缓冲区
	Sync() error

	// GetZapLogger 返回底层 zap 记录器
	GetZapLogger() *zap.Logger
}
