package eval

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/internal/resource"
	"github.com/hupe1980/odcalc/model"
	"github.com/hupe1980/odcalc/testutil"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		formula string
		want    [][]float32
	}{
		{"A + B", [][]float32{{3, 6}, {9, 12}}},
		{"A - B", [][]float32{{-1, -2}, {-3, -4}}},
		{"A * B", [][]float32{{2, 8}, {18, 32}}},
		{"A / B", [][]float32{{0.5, 0.5}, {0.5, 0.5}}},
		{"A ^ B", [][]float32{{1, 16}, {729, 65536}}},
		{"-A", [][]float32{{-1, -2}, {-3, -4}}},
		{"2 * A - B", [][]float32{{0, 0}, {0, 0}}},
		{"A + 1", [][]float32{{2, 3}, {4, 5}}},
		{"1 - A", [][]float32{{0, -1}, {-2, -3}}},
		{"12 / B", [][]float32{{6, 3}, {2, 1.5}}},
		{"A / 2", [][]float32{{0.5, 1}, {1.5, 2}}},
		{"2 ^ A", [][]float32{{2, 4}, {8, 16}}},
		{"A ^ 2", [][]float32{{1, 4}, {9, 16}}},
		{"A > 2", [][]float32{{0, 0}, {1, 1}}},
		{"2 < A", [][]float32{{0, 0}, {1, 1}}},
		{"A >= B / 2", [][]float32{{1, 1}, {1, 1}}},
		{"A != B", [][]float32{{1, 1}, {1, 1}}},
		{"A * 2 == B", [][]float32{{1, 1}, {1, 1}}},
		{"A > 1 & B < 8", [][]float32{{0, 1}, {1, 0}}},
		{"A < 2 | B > 6", [][]float32{{1, 0}, {0, 1}}},
		{"-(A + B)", [][]float32{{-3, -6}, {-9, -12}}},
	}

	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			for _, tc := range tests {
				t.Run(tc.formula, func(t *testing.T) {
					requireMatrix(t, run(t, ev, tc.formula, fixtureSources()...), tc.want...)
				})
			}
		})
	}
}

func TestScalarFormulas(t *testing.T) {
	tests := []struct {
		formula string
		want    float32
	}{
		{"1 + 2 * 3 ^ 2", 19},
		{"2 ^ 3 ^ 2", 512},
		{"-2 ^ 2", 4},
		{"(1 + 2) * 3", 9},
		{"x * y + z", 7},
		{"x > y", 0},
		{"x <= y & z > 0", 1},
		{"Log(E())", 1},
		{"PI()", math.Pi},
		{"Sqrt(16)", 4},
		{"Abs(-3)", 3},
		{"Length(x)", 1},
		{"If(x - 1, 10, 20)", 20},
		{"Sum(A + B)", 30},
		{"Avg(A - B)", -2.5},
		{"Length(A)", 4},
	}

	sources := append(fixtureSources(), Scalar("x", 1), Scalar("y", 2), Scalar("z", 5))

	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			for _, tc := range tests {
				t.Run(tc.formula, func(t *testing.T) {
					requireScalar(t, run(t, ev, tc.formula, sources...), tc.want)
				})
			}
		})
	}
}

func TestAggregations(t *testing.T) {
	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			requireVector(t, run(t, ev, "SumRows(A + B)", fixtureSources()...), model.Vertical, 9, 21)
			requireVector(t, run(t, ev, "SumColumns(A + B)", fixtureSources()...), model.Horizontal, 12, 18)
			requireVector(t, run(t, ev, "AvgRows(A)", fixtureSources()...), model.Vertical, 1.5, 3.5)
			requireVector(t, run(t, ev, "AvgColumns(A)", fixtureSources()...), model.Horizontal, 2, 3)
			requireScalar(t, run(t, ev, "Sum(SumRows(B))", fixtureSources()...), 20)
		})
	}
}

func TestMissingDataSource(t *testing.T) {
	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			r := run(t, ev, "A + X", fixtureSources()...)
			require.True(t, r.IsError())
			assert.ErrorIs(t, r.Err(), ErrMissingDataSource)

			var missing *MissingDataSourceError
			require.ErrorAs(t, r.Err(), &missing)
			assert.Equal(t, "X", missing.Name)
		})
	}
}

func TestErrorOrder(t *testing.T) {
	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			for _, formula := range []string{"X + Y", "If(X, Y, A)", "X * Y + A"} {
				r := run(t, ev, formula, fixtureSources()...)

				var missing *MissingDataSourceError
				require.ErrorAs(t, r.Err(), &missing, formula)
				assert.Equal(t, "X", missing.Name, formula)
			}
		})
	}
}

func TestSourceLookup(t *testing.T) {
	a, b := fixture()
	r := Evaluate(expr.MustCompile("A").Root(), Matrix("A", a), Matrix("A", b))
	require.Equal(t, KindMatrix, r.Kind())
	assert.Same(t, a, r.Matrix())
	assert.False(t, r.Owned())

	r = Evaluate(expr.MustCompile("a").Root(), Matrix("A", a))
	assert.ErrorIs(t, r.Err(), ErrMissingDataSource)
}

type nilMatrixSource struct{}

func (nilMatrixSource) Name() string          { return "N" }
func (nilMatrixSource) Matrix() *model.Matrix { return nil }

type bareSource struct{}

func (bareSource) Name() string { return "Q" }

func TestInvalidSources(t *testing.T) {
	r := Evaluate(expr.MustCompile("N + 1").Root(), nilMatrixSource{})
	assert.ErrorIs(t, r.Err(), ErrTypeMismatch)

	r = Evaluate(expr.MustCompile("Q").Root(), bareSource{})
	assert.ErrorIs(t, r.Err(), ErrTypeMismatch)
}

func TestStrictCategories(t *testing.T) {
	a, _ := fixture()
	other := model.NewMatrixFrom(testutil.Zones(2), testutil.Zones(2), []float32{1, 1, 1, 1})
	sources := []Source{Matrix("A", a), Matrix("C", other)}

	lenient := New()
	defer lenient.Close()
	assert.False(t, lenient.Options().StrictCategories, "size matching is the default")
	requireMatrix(t, run(t, lenient, "A + C", sources...), []float32{2, 3}, []float32{4, 5})

	strict := New(func(o *Options) { o.StrictCategories = true })
	defer strict.Close()

	r := run(t, strict, "A + C", sources...)
	require.True(t, r.IsError())
	assert.ErrorIs(t, r.Err(), ErrTypeMismatch)
	assert.ErrorIs(t, r.Err(), model.ErrIncompatibleCategories)

	var tm *TypeMismatchError
	require.ErrorAs(t, r.Err(), &tm)
	assert.Equal(t, "+", tm.Op)

	requireMatrix(t, run(t, strict, "A + A", sources...), []float32{2, 4}, []float32{6, 8})
}

func TestMemoryBudget(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 16})
	ev := New(func(o *Options) { o.Budget = ctrl })
	defer ev.Close()

	// One 2x2 buffer, reused by the outer operators.
	requireMatrix(t, run(t, ev, "(A + B) * 2 - A", fixtureSources()...), []float32{5, 10}, []float32{15, 20})
	assert.Zero(t, ctrl.MemoryUsage())

	r := run(t, ev, "Transpose(A) + Transpose(B)", fixtureSources()...)
	require.True(t, r.IsError())
	assert.ErrorIs(t, r.Err(), ErrMemoryBudget)
	assert.ErrorIs(t, r.Err(), resource.ErrMemoryLimitExceeded)
	assert.Zero(t, ctrl.MemoryUsage())
}

func TestDefaultEvaluator(t *testing.T) {
	root := expr.MustCompile("SumColumns(A)").Root()
	requireVector(t, Evaluate(root, fixtureSources()...), model.Horizontal, 4, 6)
	assert.Equal(t, 1<<14, DefaultOptions.ParallelThreshold)
}

func TestConcurrentEvaluations(t *testing.T) {
	rng := testutil.NewRNG(42)
	zones := testutil.Zones(64)
	a := rng.Matrix(zones, zones, 0, 1)
	b := rng.Matrix(zones, zones, 1, 2)
	sources := []Source{Matrix("A", a), Matrix("B", b)}

	ev := New(func(o *Options) {
		o.Workers = 4
		o.ParallelThreshold = 256
	})
	defer ev.Close()

	e := expr.MustCompile("NormalizeRows(A * B + Transpose(A)) + SumColumns(B) / 64")
	want := ev.EvaluateExpression(e, sources...)
	require.False(t, want.IsError(), "%v", want.Err())

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := ev.EvaluateExpression(e, sources...)
			if assert.False(t, got.IsError()) {
				assert.Equal(t, want.Matrix().Data(), got.Matrix().Data())
			}
		}()
	}
	wg.Wait()
}

func TestSequentialMatchesParallel(t *testing.T) {
	rng := testutil.NewRNG(4711)
	rows, cols := testutil.Zones(150), testutil.Zones(90)
	sources := []Source{
		Matrix("A", rng.Matrix(rows, cols, 0, 1)),
		Matrix("B", rng.Matrix(rows, cols, 1, 3)),
		Vector("H", rng.Vector(cols, 0, 1), model.Horizontal),
		Vector("V", rng.Vector(rows, 0, 1), model.Vertical),
	}

	formulas := []string{
		"A * B + H",
		"(A - V) / B",
		"Transpose(A + B)",
		"SumColumns(A * B)",
		"SumRows(A) + V",
		"NormalizeColumns(B)",
		"NormalizeRows(A)",
		"If(A > 0.5, B, A)",
		"If(H > 0.5, A, B)",
		"Matrix(AsVertical(SumRows(A)))",
		"Sqrt(A) * Log(B)",
	}

	evs := evaluators(t)
	for _, f := range formulas {
		t.Run(f, func(t *testing.T) {
			want := run(t, evs["sequential"], f, sources...)
			got := run(t, evs["parallel"], f, sources...)
			require.False(t, want.IsError(), "%v", want.Err())
			require.False(t, got.IsError(), "%v", got.Err())
			assert.Equal(t, want.Kind(), got.Kind())
			assert.Equal(t, want.Direction(), got.Direction())
			assert.InDeltaSlice(t, want.data(), got.data(), 1e-4)
		})
	}

	want := run(t, evs["sequential"], "Sum(A * B)", sources...)
	got := run(t, evs["parallel"], "Sum(A * B)", sources...)
	assert.InEpsilon(t, want.Scalar(), got.Scalar(), 1e-4)
}

// tracedSource records the order in which matrices are requested and how many
// requests overlap.
type tracedSource struct {
	name  string
	m     *model.Matrix
	trace *sourceTrace
}

type sourceTrace struct {
	mu       sync.Mutex
	order    []string
	inFlight int
	peak     int
}

func (s *tracedSource) Name() string { return s.name }

func (s *tracedSource) Matrix() *model.Matrix {
	tr := s.trace
	tr.mu.Lock()
	tr.order = append(tr.order, s.name)
	tr.inFlight++
	tr.peak = max(tr.peak, tr.inFlight)
	tr.mu.Unlock()

	time.Sleep(2 * time.Millisecond)

	tr.mu.Lock()
	tr.inFlight--
	tr.mu.Unlock()
	return s.m
}

func TestBinaryOperandsStayOnCaller(t *testing.T) {
	ev := New(func(o *Options) {
		o.Workers = 4
		o.MaxForks = 8
	})
	defer ev.Close()

	a, b := fixture()
	tr := &sourceTrace{}
	sources := []Source{
		&tracedSource{name: "A", m: a, trace: tr},
		&tracedSource{name: "B", m: b, trace: tr},
	}

	r := run(t, ev, "(A - B) / (B + A)", sources...)
	requireMatrix(t, r, []float32{-1.0 / 3, -1.0 / 3}, []float32{-1.0 / 3, -1.0 / 3})

	assert.Equal(t, []string{"A", "B", "B", "A"}, tr.order)
	assert.Equal(t, 1, tr.peak)
}

func TestBinaryLeftErrorSkipsRight(t *testing.T) {
	a, _ := fixture()
	tr := &sourceTrace{}

	ev := New()
	defer ev.Close()

	r := run(t, ev, "X + A", &tracedSource{name: "A", m: a, trace: tr})
	assert.ErrorIs(t, r.Err(), ErrMissingDataSource)
	assert.Empty(t, tr.order)
}

func TestCloseDuringEvaluate(t *testing.T) {
	rng := testutil.NewRNG(3)
	zones := testutil.Zones(32)
	sources := []Source{Matrix("A", rng.Matrix(zones, zones, 0, 1))}
	e := expr.MustCompile("A * 2 - A")

	ev := New(func(o *Options) {
		o.Workers = 4
		o.ParallelThreshold = 1
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				r := ev.EvaluateExpression(e, sources...)
				assert.False(t, r.IsError())
			}
		}()
	}

	ev.Close()
	wg.Wait()

	r := ev.EvaluateExpression(expr.MustCompile("A - A"), sources...)
	require.False(t, r.IsError(), "%v", r.Err())
	assert.Equal(t, make([]float32, 32*32), r.Matrix().Data())
}
