package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestL_LazyInit(t *testing.T) {
	log = nil
	l := L()
	require.NotNil(t, l)
}

func TestInit_LogLevelOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	Init("")

	require.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFrom(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", RequestIDFrom(ctx))
}

func TestFromCtx(t *testing.T) {
	t.Run("NoRequestID", func(t *testing.T) {
		l := FromCtx(context.Background())
		require.NotNil(t, l)
	})

	t.Run("WithRequestID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-abc")
		l := FromCtx(ctx)
		require.NotNil(t, l)
	})
}
