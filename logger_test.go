package odcalc

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	logger.WithFormula("A + B").Info("batch")
	assert.Contains(t, buf.String(), `formula="A + B"`)

	buf.Reset()
	logger.LogRejected(ctx, "A", context.DeadlineExceeded)
	assert.Contains(t, buf.String(), "evaluation rejected")
	assert.Contains(t, buf.String(), "context deadline exceeded")

	buf.Reset()
	logger.LogCompile(ctx, "A +", false, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "compile failed")

	buf.Reset()
	logger.LogEvaluate(ctx, "Sum(A)", "scalar", time.Millisecond, nil)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "kind=scalar")

	buf.Reset()
	logger.LogCacheEvict("A * B")
	assert.Contains(t, buf.String(), "compiled formula evicted")
}

func TestNoopLogger(t *testing.T) {
	logger := NoopLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	logger.LogEvaluate(context.Background(), "A", "matrix", 0, errors.New("ignored"))
}

func TestLoggerConstructors(t *testing.T) {
	assert.True(t, NewJSONLogger(slog.LevelDebug).Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, NewTextLogger(slog.LevelWarn).Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, NewLogger(nil).Enabled(context.Background(), slog.LevelInfo))
}
