package log

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logconfig "github.com/weisyn/securemsg/internal/config/log"
	configtypes "github.com/weisyn/securemsg/pkg/types"
)

// captureStdout 捕获标准输出
func captureStdout(t *testing.T, f func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// TestConsoleLog 测试控制台格式日志
func TestConsoleLog(t *testing.T) {
	logConfig := logconfig.New(&logconfig.LogOptions{
		Level:         InfoLevel,
		ToConsole:     true,
		ConsoleOutput: "stdout",
	})

	output := captureStdout(t, func() {
		logger, err := New(logConfig)
		require.NoError(t, err)
		logger.Info("测试控制台日志")
		logger.Debug("不应出现")
		logger.Sync()
	})

	if !strings.Contains(output, "INFO") {
		t.Error("控制台日志应该包含INFO级别")
	}
	if !strings.Contains(output, "测试控制台日志") {
		t.Error("控制台日志应该包含消息内容")
	}
	if strings.Contains(output, "不应出现") {
		t.Error("低于配置级别的日志不应输出")
	}
}

// TestStructuredLogging 测试结构化日志
func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(logconfig.New(nil), &buf)

	logger.With("key1", "value1", "key2", 42).Info("结构化日志测试")
	require.NoError(t, logger.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(42), entry["key2"])
	assert.Equal(t, "结构化日志测试", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

// TestWithOddArgs 奇数个参数时丢弃最后一个键
func TestWithOddArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(logconfig.New(nil), &buf)

	logger.With("module", "crypto", "dangling").Warn("odd")
	require.NoError(t, logger.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "crypto", entry["module"])
	assert.NotContains(t, entry, "dangling")
}

// TestFileLog 测试文件输出与级别过滤
func TestFileLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "securemsg.log")

	logConfig := logconfig.New(&configtypes.UserLogConfig{
		Level:    configtypes.StringPtr("DEBUG"),
		FilePath: configtypes.StringPtr(logPath),
	})
	assert.False(t, logConfig.IsConsoleEnabled(), "指定文件路径时默认不输出到控制台")

	logger, err := New(logConfig)
	require.NoError(t, err)

	logger.Debug("调试日志")
	logger.Infof("信息日志 %d", 1)
	logger.Warn("警告日志")
	logger.Error("错误日志")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	for _, want := range []string{"调试日志", "信息日志 1", "警告日志", "错误日志"} {
		assert.Contains(t, string(content), want)
	}
}

// TestGlobalLogger 测试全局日志记录器替换
func TestGlobalLogger(t *testing.T) {
	old := GetLogger()
	t.Cleanup(func() { SetLogger(old) })

	var buf bytes.Buffer
	SetLogger(NewWithWriter(logconfig.New(nil), &buf))
	SetLogger(nil) // 忽略 nil

	Info("global info")
	With("op", "sign").Errorf("failed: %s", "x")
	Debug("filtered")

	out := buf.String()
	assert.Contains(t, out, "global info")
	assert.Contains(t, out, `"op":"sign"`)
	assert.Contains(t, out, "failed: x")
	assert.NotContains(t, out, "filtered")
}

// TestNopLogger 测试空日志记录器
func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	require.NotNil(t, logger.GetZapLogger())

	assert.NotPanics(t, func() {
		logger.With("module", "test").Info("discarded")
		logger.Errorf("discarded %d", 1)
	})

	named := NewModuleLogger(nil, "crypto")
	require.NotNil(t, named)
}
