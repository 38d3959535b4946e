package eval

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/internal/parallel"
	"github.com/hupe1980/odcalc/internal/simd"
	"github.com/hupe1980/odcalc/model"
)

// Budget accounts for intermediate buffers. *resource.Controller satisfies it.
type Budget interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

// Options configures an Evaluator.
type Options struct {
	// Workers is the row parallelism of matrix kernels. If 0, uses GOMAXPROCS.
	Workers int

	// ParallelThreshold is the element count below which matrix kernels run
	// on the calling goroutine.
	ParallelThreshold int

	// MaxForks bounds subtree evaluations running on extra goroutines across
	// all evaluations. If 0, uses GOMAXPROCS; negative disables forking.
	MaxForks int64

	// StrictCategories additionally requires combined operands to share
	// Categories instances, not just sizes.
	StrictCategories bool

	// Budget, if set, is charged for every buffer allocated during an
	// evaluation and released when the evaluation returns.
	Budget Budget
}

// DefaultOptions contains the default configuration for an Evaluator.
var DefaultOptions = Options{
	ParallelThreshold: 1 << 14,
}

// Evaluator evaluates expression trees. It is safe for concurrent use.
type Evaluator struct {
	opts   Options
	pool   *parallel.Pool
	joiner *parallel.Joiner
}

// New creates an Evaluator. Close releases its workers.
func New(optFns ...func(o *Options)) *Evaluator {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxForks == 0 {
		opts.MaxForks = int64(runtime.GOMAXPROCS(0))
	}

	return &Evaluator{
		opts:   opts,
		pool:   parallel.NewPool(opts.Workers),
		joiner: parallel.NewJoiner(opts.MaxForks),
	}
}

// Options returns the effective configuration.
func (ev *Evaluator) Options() Options { return ev.opts }

// Close stops the worker pool. It may be called while evaluations are
// running; those and later ones finish with sequential row kernels.
func (ev *Evaluator) Close() {
	ev.pool.Close()
}

// Evaluate evaluates root against sources. Variables resolve to the first
// source with a matching name.
func (ev *Evaluator) Evaluate(root expr.Node, sources ...Source) Result {
	s := &state{ev: ev, sources: sources}
	defer s.release()

	return s.eval(root)
}

// EvaluateExpression evaluates a compiled expression.
func (ev *Evaluator) EvaluateExpression(e *expr.Expression, sources ...Source) Result {
	return ev.Evaluate(e.Root(), sources...)
}

var defaultEvaluator = sync.OnceValue(func() *Evaluator { return New() })

// Evaluate evaluates root with a shared Evaluator using DefaultOptions.
func Evaluate(root expr.Node, sources ...Source) Result {
	return defaultEvaluator().Evaluate(root, sources...)
}

// state is the per-evaluation context.
type state struct {
	ev       *Evaluator
	sources  []Source
	reserved atomic.Int64
}

func (s *state) release() {
	if b := s.ev.opts.Budget; b != nil {
		b.ReleaseMemory(s.reserved.Load())
	}
}

func (s *state) eval(n expr.Node) Result {
	switch n := n.(type) {
	case *expr.Literal:
		return ScalarResult(n.Value)
	case *expr.Variable:
		return s.variable(n.Name)
	case *expr.Negate:
		x := s.eval(n.Operand)
		if x.IsError() {
			return x
		}
		return s.unary(x, func(v float32) float32 { return -v }, simd.Neg)
	case *expr.Binary:
		// Only calls and fused nodes fork; operators stay on this goroutine.
		l := s.eval(n.Left)
		if l.IsError() {
			return l
		}
		r := s.eval(n.Right)
		if r.IsError() {
			return r
		}
		return s.binary(n.Op, l, r)
	case *expr.Call:
		return s.call(n)
	case *expr.FusedMultiplyAdd:
		return s.fma(n)
	default:
		return ErrorResult(fmt.Errorf("%w: node %T", ErrUnsupported, n))
	}
}

func (s *state) variable(name string) Result {
	src, ok := lookup(s.sources, name)
	if !ok {
		return ErrorResult(&MissingDataSourceError{Name: name})
	}

	switch src := src.(type) {
	case MatrixSource:
		m := src.Matrix()
		if m == nil {
			return ErrorResult(mismatch(name, "data source produced no matrix"))
		}
		return MatrixResult(m, false)
	case VectorSource:
		v := src.Vector()
		if v == nil {
			return ErrorResult(mismatch(name, "data source produced no vector"))
		}
		dir := model.Unassigned
		if d, ok := src.(Directed); ok {
			dir = d.Direction()
		}
		return VectorResult(v, dir, false)
	case ScalarSource:
		return ScalarResult(src.Scalar())
	default:
		return ErrorResult(mismatch(name, "data source %T produces no matrix, vector or scalar", src))
	}
}

// charge reserves n float32 elements against the budget.
func (s *state) charge(n int) error {
	b := s.ev.opts.Budget
	if b == nil || n == 0 {
		return nil
	}

	bytes := int64(n) * 4
	if err := b.AcquireMemory(bytes); err != nil {
		return fmt.Errorf("%w: %w", ErrMemoryBudget, err)
	}
	s.reserved.Add(bytes)
	return nil
}

func (s *state) newVector(cats *model.Categories) (*model.Vector, error) {
	if err := s.charge(cats.Len()); err != nil {
		return nil, err
	}
	return model.NewVector(cats), nil
}

func (s *state) newMatrix(rows, cols *model.Categories) (*model.Matrix, error) {
	if err := s.charge(rows.Len() * cols.Len()); err != nil {
		return nil, err
	}
	return model.NewMatrix(rows, cols), nil
}

// rows runs fn over [0, n) rows of width cols, in parallel when the matrix
// is large enough.
func (s *state) rows(n, cols int, fn func(start, end int)) {
	if n*cols < s.ev.opts.ParallelThreshold {
		fn(0, n)
		return
	}
	s.ev.pool.For(n, fn)
}

// apply calls fn for every row of dst: once for a vector, per row for a
// matrix.
func (s *state) apply(dst Result, fn func(d []float32, row int)) {
	switch dst.kind {
	case KindVector:
		fn(dst.vector.Data(), 0)
	case KindMatrix:
		m := dst.matrix
		s.rows(m.Rows(), m.Cols(), func(start, end int) {
			for r := start; r < end; r++ {
				fn(m.Row(r), r)
			}
		})
	}
}
