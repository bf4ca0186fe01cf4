package logger_test

import (
	"context"
	"testing"

	"workshop/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, want := range cases {
		got, ok := logger.ParseLogLevel(s)
		require.True(t, ok, s)
		assert.Equal(t, want, got, s)
	}

	got, ok := logger.ParseLogLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, zapcore.InfoLevel, got)
}

func TestFromContext(t *testing.T) {
	t.Run("should fall back to global logger", func(t *testing.T) {
		assert.Same(t, logger.Logger(), logger.FromContext(context.Background()))
	})

	t.Run("should carry fields added with With", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

		ctx = logger.With(ctx, "order_id", "abc")
		logger.Infow(ctx, "stage advanced", "stage", "making")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "stage advanced", entry.Message)
		assert.Equal(t, "abc", entry.ContextMap()["order_id"])
		assert.Equal(t, "making", entry.ContextMap()["stage"])
	})
}

func TestSetLevel(t *testing.T) {
	previous := logger.Level()
	t.Cleanup(func() { logger.SetLevel(previous) })

	logger.SetLevel(zapcore.WarnLevel)

	assert.Equal(t, zapcore.WarnLevel, logger.Level())
	assert.False(t, logger.AtomicLevel().Enabled(zapcore.InfoLevel))
}
