package odcalc

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/odcalc/eval"
	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/internal/cache"
	"github.com/hupe1980/odcalc/internal/resource"
	"github.com/hupe1980/odcalc/model"
)

// Engine compiles and evaluates formulas. It is safe for concurrent use.
type Engine struct {
	evaluator *eval.Evaluator
	cache     *cache.Cache[*expr.Expression] // nil when caching is disabled
	ctrl      *resource.Controller
	logger    *Logger
	metrics   MetricsCollector

	mu     sync.RWMutex // held shared by evaluations, exclusively by Close
	closed bool
}

// CacheStats is a snapshot of the compiled formula cache.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Len       int
}

// HitRate returns Hits / (Hits + Misses), or 0 before the first lookup.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// New creates an Engine. Close releases its workers.
func New(optFns ...Option) (*Engine, error) {
	opts := applyOptions(optFns)

	ctrl := resource.NewController(resource.Config{
		MemoryLimitBytes:         opts.memoryLimitBytes,
		MaxConcurrentEvaluations: opts.maxConcurrentEvaluations,
		EvaluationsPerSecond:     opts.evaluationsPerSecond,
		Burst:                    opts.evaluationBurst,
	})

	e := &Engine{
		ctrl:    ctrl,
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}

	if opts.cacheSize > 0 {
		c, err := cache.New(opts.cacheSize, func(formula string, _ *expr.Expression) {
			e.logger.LogCacheEvict(formula)
		})
		if err != nil {
			return nil, err
		}
		e.cache = c
	}

	e.evaluator = eval.New(func(o *eval.Options) {
		o.Workers = opts.workers
		o.MaxForks = opts.maxForks
		o.StrictCategories = opts.strictCategories
		o.Budget = ctrl
		if opts.parallelThreshold >= 0 {
			o.ParallelThreshold = opts.parallelThreshold
		}
	})

	return e, nil
}

// Compile compiles formula, returning a cached expression when the same
// text was compiled before.
func (e *Engine) Compile(formula string) (*expr.Expression, error) {
	return e.compile(context.Background(), formula)
}

func (e *Engine) compile(ctx context.Context, formula string) (*expr.Expression, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, ErrClosed
	}

	start := time.Now()

	var (
		ex     *expr.Expression
		cached bool
		err    error
	)
	if e.cache != nil {
		ex, cached, err = e.cache.GetOrLoad(formula, func() (*expr.Expression, error) {
			return expr.Compile(formula)
		})
	} else {
		ex, err = expr.Compile(formula)
	}
	err = translateError(formula, err)

	e.metrics.RecordCompile(time.Since(start), cached, err)
	e.logger.LogCompile(ctx, formula, cached, err)

	return ex, err
}

// Evaluate compiles formula and evaluates it against sources. Evaluation
// errors are returned both as err and inside the Result.
func (e *Engine) Evaluate(ctx context.Context, formula string, sources ...eval.Source) (eval.Result, error) {
	ex, err := e.compile(ctx, formula)
	if err != nil {
		return eval.ErrorResult(err), err
	}
	return e.EvaluateExpression(ctx, ex, sources...)
}

// EvaluateExpression evaluates a compiled expression against sources.
//
// The call waits for the evaluation rate limit and a free evaluation slot;
// both waits honor ctx.
func (e *Engine) EvaluateExpression(ctx context.Context, ex *expr.Expression, sources ...eval.Source) (eval.Result, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return eval.ErrorResult(ErrClosed), ErrClosed
	}

	release, err := e.ctrl.Admit(ctx)
	if err != nil {
		e.logger.LogRejected(ctx, ex.Text(), err)
		return eval.ErrorResult(err), err
	}
	defer release()

	start := time.Now()
	r := e.evaluator.EvaluateExpression(ex, sources...)
	elapsed := time.Since(start)

	err = translateError(ex.Text(), r.Err())
	if err != nil {
		r = eval.ErrorResult(err)
	}

	e.metrics.RecordEvaluate(elapsed, r.Kind(), err)
	e.logger.LogEvaluate(ctx, ex.Text(), r.Kind().String(), elapsed, err)

	return r, err
}

// EvaluateScalar evaluates a formula that must produce a scalar.
func (e *Engine) EvaluateScalar(ctx context.Context, formula string, sources ...eval.Source) (float32, error) {
	r, err := e.expect(ctx, formula, eval.KindScalar, sources)
	if err != nil {
		return 0, err
	}
	return r.Scalar(), nil
}

// EvaluateVector evaluates a formula that must produce a vector. The vector
// is owned by the caller.
func (e *Engine) EvaluateVector(ctx context.Context, formula string, sources ...eval.Source) (*model.Vector, model.Direction, error) {
	r, err := e.expect(ctx, formula, eval.KindVector, sources)
	if err != nil {
		return nil, model.Unassigned, err
	}
	r = r.Materialize()
	return r.Vector(), r.Direction(), nil
}

// EvaluateMatrix evaluates a formula that must produce a matrix. The matrix
// is owned by the caller.
func (e *Engine) EvaluateMatrix(ctx context.Context, formula string, sources ...eval.Source) (*model.Matrix, error) {
	r, err := e.expect(ctx, formula, eval.KindMatrix, sources)
	if err != nil {
		return nil, err
	}
	return r.Materialize().Matrix(), nil
}

func (e *Engine) expect(ctx context.Context, formula string, want eval.Kind, sources []eval.Source) (eval.Result, error) {
	r, err := e.Evaluate(ctx, formula, sources...)
	if err != nil {
		return r, err
	}
	if r.Kind() != want {
		return r, &UnexpectedResultError{Want: want, Got: r.Kind()}
	}
	return r, nil
}

// CacheStats returns a snapshot of the compiled formula cache. It is zero
// when caching is disabled.
func (e *Engine) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{}
	}
	s := e.cache.Stats()
	return CacheStats{
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
		Len:       s.Len,
	}
}

// MemoryUsage returns the bytes currently reserved by in-flight evaluations.
func (e *Engine) MemoryUsage() int64 {
	return e.ctrl.MemoryUsage()
}

// PeakMemoryUsage returns the highest number of bytes reserved at once since
// the engine was created.
func (e *Engine) PeakMemoryUsage() int64 {
	return e.ctrl.PeakMemoryUsage()
}

// Close waits for in-flight evaluations, then releases the worker pool and
// drops cached formulas. Calls after Close fail with ErrClosed. Calling
// Close multiple times is safe.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	e.evaluator.Close()
	if e.cache != nil {
		e.cache.Purge()
	}
	return nil
}
