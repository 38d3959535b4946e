package odcalc

import (
	"log/slog"
)

// DefaultCacheSize is the number of compiled formulas kept by default.
const DefaultCacheSize = 256

type options struct {
	logger                   *Logger
	metricsCollector         MetricsCollector
	cacheSize                int
	workers                  int
	parallelThreshold        int
	maxForks                 int64
	strictCategories         bool
	memoryLimitBytes         int64
	maxConcurrentEvaluations int64
	evaluationsPerSecond     float64
	evaluationBurst          int
}

// Option configures an Engine.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := odcalc.NewJSONLogger(slog.LevelInfo)
//	engine, _ := odcalc.New(odcalc.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &odcalc.BasicMetricsCollector{}
//	engine, _ := odcalc.New(odcalc.WithMetricsCollector(metrics))
//	// ... use engine ...
//	stats := metrics.GetStats()
//	fmt.Printf("Evaluations: %d, Avg latency: %dns\n", stats.EvalCount, stats.EvalAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCacheSize sets how many compiled formulas are kept, keyed by formula
// text. If size <= 0, every call compiles.
func WithCacheSize(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithWorkers sets the number of workers splitting matrix rows.
// If n <= 0, uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithParallelThreshold sets the element count from which matrix kernels
// are split across workers.
func WithParallelThreshold(elements int) Option {
	return func(o *options) {
		o.parallelThreshold = elements
	}
}

// WithMaxForks bounds how many subtree evaluations run on extra goroutines
// at once across the engine. Negative disables forking.
func WithMaxForks(n int64) Option {
	return func(o *options) {
		o.maxForks = n
	}
}

// WithStrictCategories requires combined operands to share Categories
// instances instead of only matching sizes.
func WithStrictCategories(strict bool) Option {
	return func(o *options) {
		o.strictCategories = strict
	}
}

// WithMemoryLimit bounds the intermediate buffers of all in-flight
// evaluations. Evaluations that would exceed it fail with
// ErrMemoryLimitExceeded. If bytes <= 0, memory is only tracked.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimitBytes = bytes
	}
}

// WithMaxConcurrentEvaluations bounds how many evaluations run at once.
// Further calls wait for a slot or their context.
func WithMaxConcurrentEvaluations(n int64) Option {
	return func(o *options) {
		o.maxConcurrentEvaluations = n
	}
}

// WithEvaluationRate throttles evaluation starts to perSecond with the given
// burst.
func WithEvaluationRate(perSecond float64, burst int) Option {
	return func(o *options) {
		o.evaluationsPerSecond = perSecond
		o.evaluationBurst = burst
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:            NoopLogger(),
		metricsCollector:  NoopMetricsCollector{},
		cacheSize:         DefaultCacheSize,
		parallelThreshold: -1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
