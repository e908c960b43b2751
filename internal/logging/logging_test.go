package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestZapLogLevelFromString(t *testing.T) {
	tests := []struct {
		levelStr string
		expected zapcore.Level
		isError  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"ERROR", zapcore.ErrorLevel, false},
		{"FATAL", zapcore.FatalLevel, false},
		{"PANIC", zapcore.PanicLevel, false},
		{"UNKNOWN", -1, true},
	}

	for _, test := range tests {
		level, err := ZapLogLevelFromString(test.levelStr)
		if test.isError {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
			assert.Equal(t, test.expected, level)
		}
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZapLogger(zapcore.AddSync(&buf), false, false, zapcore.InfoLevel)

	logger.Debug("hidden")
	logger.Info("type built", zap.String("type", "post"))
	require.NoError(t, logger.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "type built", entry["msg"])
	assert.Equal(t, "post", entry["type"])
	assert.Contains(t, entry, "hostname")
	assert.Contains(t, entry, "pid")
	assert.Contains(t, entry, "time")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZapLogger(zapcore.AddSync(&buf), true, true, zapcore.DebugLevel)

	logger.Debug("a pretty debug message")
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "a pretty debug message")
	assert.Contains(t, buf.String(), "DEBUG")
}
