package logger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"filmorate/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}
}

func TestFromContext(t *testing.T) {
	t.Run("logger stored in context is returned", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		retrieved, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrieved)
	})

	t.Run("missing logger is an error", func(t *testing.T) {
		retrieved, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, retrieved)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	t.Run("context logger wins over global", func(t *testing.T) {
		contextLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		globalLogger, err := logger.NewLogger(logger.Production, "error")
		require.NoError(t, err)
		logger.SetGlobalLogger(globalLogger)

		ctx := logger.NewContext(context.Background(), contextLogger)

		assert.Same(t, contextLogger, logger.Log(ctx))
	})

	t.Run("global logger is used without context logger", func(t *testing.T) {
		globalLogger, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)
		logger.SetGlobalLogger(globalLogger)

		assert.Same(t, globalLogger, logger.Log(context.Background()))
	})

	t.Run("fallback logger is never nil", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		assert.NotNil(t, logger.Log(context.Background()))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id is kept", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("empty id is generated as uuid", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("unsafe or oversized ids are replaced", func(t *testing.T) {
		for _, raw := range []string{
			"req\nforged=1",
			"id with spaces",
			"идентификатор",
			strings.Repeat("a", logger.MaxRequestIDLength+1),
		} {
			id, ok := logger.GetRequestID(logger.NewRequestIDContext(context.Background(), raw))
			require.True(t, ok)
			assert.NotEqual(t, raw, id)
			_, err := uuid.Parse(id)
			assert.NoError(t, err, raw)
		}
	})

	t.Run("max length id is kept", func(t *testing.T) {
		raw := strings.Repeat("a", logger.MaxRequestIDLength)
		id, _ := logger.GetRequestID(logger.NewRequestIDContext(context.Background(), raw))
		assert.Equal(t, raw, id)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}

func TestNewFromZapAddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core))

	log.Info(logger.NewRequestIDContext(context.Background(), "req-9"), "hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-9", logs.All()[0].ContextMap()[logger.RequestID])
}

func TestLoggerMethods(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewRequestIDContext(context.Background(), "req-3")

	assert.NotSame(t, log, log.With(zap.String("key", "value")))
	assert.NotPanics(t, func() {
		log.Debug(ctx, "debug message", zap.Int("count", 1))
		log.Info(ctx, "info message")
		log.Warn(ctx, "warn message")
		log.Error(ctx, "error message")
		_ = log.Sync()
	})
	assert.NotPanics(t, func() {
		logger.NewNop().Info(ctx, "dropped")
	})
}
