package odcalc

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with odcalc-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, logs at info level as text to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return NewTextLogger(slog.LevelInfo)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON lines to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes logfmt text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithFormula adds the formula text to the logger.
func (l *Logger) WithFormula(formula string) *Logger {
	return &Logger{
		Logger: l.Logger.With("formula", formula),
	}
}

// LogRejected logs an evaluation that was not admitted before ctx ended.
func (l *Logger) LogRejected(ctx context.Context, formula string, err error) {
	l.WarnContext(ctx, "evaluation rejected",
		"formula", formula,
		"error", err,
	)
}

// LogCompile logs a compile request.
func (l *Logger) LogCompile(ctx context.Context, formula string, cached bool, err error) {
	if err != nil {
		l.WarnContext(ctx, "compile failed",
			"formula", formula,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "compile completed",
			"formula", formula,
			"cached", cached,
		)
	}
}

// LogEvaluate logs an evaluation.
func (l *Logger) LogEvaluate(ctx context.Context, formula string, kind string, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "evaluation failed",
			"formula", formula,
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "evaluation completed",
			"formula", formula,
			"kind", kind,
			"elapsed", elapsed,
		)
	}
}

// LogCacheEvict logs a compiled formula dropped from the cache.
func (l *Logger) LogCacheEvict(formula string) {
	l.Debug("compiled formula evicted",
		"formula", formula,
	)
}
