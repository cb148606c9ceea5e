package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLogger(LevelWarn, &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestDefaultLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLogger(LevelInfo, &buf)

	logger.Info("completed in %.3f ms", 12.5)
	assert.Contains(t, buf.String(), "completed in 12.500 ms")
	assert.Contains(t, buf.String(), "[INFO]")
}

func TestDefaultLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLogger(LevelInfo, &buf)

	logger.WithField("engine", "halo").Info("worker ready")
	assert.Contains(t, buf.String(), "engine=halo")
	assert.Contains(t, buf.String(), "worker ready")

	// The parent logger is unchanged.
	buf.Reset()
	logger.Info("plain")
	assert.NotContains(t, buf.String(), "engine=halo")
}

func TestDefaultLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLogger(LevelError, &buf)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.SetLevel(LevelInfo)
	logger.Info("visible")
	assert.True(t, strings.Contains(buf.String(), "visible"))
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	var buf bytes.Buffer
	replacement := NewDefaultLogger(LevelInfo, &buf)
	SetGlobalLogger(replacement)

	assert.Equal(t, Logger(replacement), GetGlobalLogger())
	GetGlobalLogger().Info("through the global")
	assert.Contains(t, buf.String(), "through the global")
}

func TestNullLogger_Discards(t *testing.T) {
	logger := &NullLogger{}
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
	assert.Equal(t, logger, logger.WithField("k", "v"))
}
