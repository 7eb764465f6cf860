package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(buf *bytes.Buffer, level string) *Logger {
	return NewLogger(LoggerOptions{
		Level:  level,
		Format: "json",
		Output: buf,
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("default logger", func(t *testing.T) {
		require.NotNil(t, NewDefaultLogger())
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newJSONLogger(&buf, "info")
		logger.Info().Msg("test")
		assert.Contains(t, buf.String(), `"message":"test"`)
	})

	t.Run("pretty format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:  "info",
			Format: "pretty",
			Output: &buf,
		})
		logger.Info().Msg("test")
		assert.Contains(t, buf.String(), "test")
		assert.NotContains(t, buf.String(), `"message"`)
	})

	t.Run("verbose option enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:   "warn",
			Format:  "json",
			Output:  &buf,
			Verbose: true,
		})
		logger.Debug().Msg("debug test")
		assert.Contains(t, buf.String(), "debug test")
	})
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	require.NotNil(t, logger)
	logger.Error().Msg("dropped")
}

func TestLogger_ContextFields(t *testing.T) {
	tests := []struct {
		name   string
		derive func(*Logger) *Logger
		want   string
	}{
		{"component", func(l *Logger) *Logger { return l.WithComponent("clidoc") }, `"component":"clidoc"`},
		{"pipeline", func(l *Logger) *Logger { return l.WithPipeline("sdk") }, `"pipeline":"sdk"`},
		{"path", func(l *Logger) *Logger { return l.WithPath("docs/sdk/api.md") }, `"path":"docs/sdk/api.md"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			derived := tt.derive(newJSONLogger(&buf, "info"))
			derived.Info().Msg("hello")
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "hello")
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level     string
		logFunc   func(*Logger)
		shouldLog bool
	}{
		{"debug", func(l *Logger) { l.Debug().Msg("x") }, true},
		{"info", func(l *Logger) { l.Debug().Msg("x") }, false},
		{"info", func(l *Logger) { l.Info().Msg("x") }, true},
		{"warn", func(l *Logger) { l.Info().Msg("x") }, false},
		{"warn", func(l *Logger) { l.Warn().Msg("x") }, true},
		{"error", func(l *Logger) { l.Warn().Msg("x") }, false},
		{"error", func(l *Logger) { l.Error().Msg("x") }, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		tt.logFunc(newJSONLogger(&buf, tt.level))
		if tt.shouldLog {
			assert.NotEmpty(t, buf.String(), "level %s", tt.level)
		} else {
			assert.Empty(t, buf.String(), "level %s", tt.level)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("bogus"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel(""))
}
