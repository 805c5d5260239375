package log

import (
	logInterface "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
)

// NewNopLogger 返回丢弃所有输出的日志记录器
func NewNopLogger() logInterface.Logger {
	zl := zap.NewNop()
	return &Logger{
		zapLogger: zl,
		sugar:     zl.Sugar(),
	}
}
