package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/model"
	"github.com/hupe1980/odcalc/testutil"
)

// evaluators returns a sequential evaluator and one that forks every
// subtree and splits every matrix across workers.
func evaluators(t *testing.T) map[string]*Evaluator {
	t.Helper()

	seq := New(func(o *Options) {
		o.Workers = 1
		o.MaxForks = -1
	})
	par := New(func(o *Options) {
		o.Workers = 4
		o.MaxForks = 8
		o.ParallelThreshold = 1
	})
	t.Cleanup(func() {
		seq.Close()
		par.Close()
	})

	return map[string]*Evaluator{"sequential": seq, "parallel": par}
}

// fixture returns the 2x2 matrices used throughout the tests:
// A = [[1,2],[3,4]] and B = [[2,4],[6,8]], both over the same zones.
func fixture() (a, b *model.Matrix) {
	zones := testutil.Zones(2)
	a = model.NewMatrixFrom(zones, zones, []float32{1, 2, 3, 4})
	b = model.NewMatrixFrom(zones, zones, []float32{2, 4, 6, 8})
	return a, b
}

func fixtureSources() []Source {
	a, b := fixture()
	return []Source{Matrix("A", a), Matrix("B", b)}
}

func run(t *testing.T, ev *Evaluator, formula string, sources ...Source) Result {
	t.Helper()

	e, err := expr.Compile(formula)
	require.NoError(t, err, formula)
	return ev.EvaluateExpression(e, sources...)
}

func requireMatrix(t *testing.T, r Result, want ...[]float32) {
	t.Helper()

	require.False(t, r.IsError(), "%v", r.Err())
	require.Equal(t, KindMatrix, r.Kind())

	m := r.Matrix()
	require.Equal(t, len(want), m.Rows())
	for i, row := range want {
		assert.InDeltaSlice(t, row, m.Row(i), 1e-5, "row %d", i)
	}
}

func requireVector(t *testing.T, r Result, dir model.Direction, want ...float32) {
	t.Helper()

	require.False(t, r.IsError(), "%v", r.Err())
	require.Equal(t, KindVector, r.Kind())
	assert.Equal(t, dir, r.Direction())
	assert.InDeltaSlice(t, want, r.Vector().Data(), 1e-5)
}

func requireScalar(t *testing.T, r Result, want float32) {
	t.Helper()

	require.False(t, r.IsError(), "%v", r.Err())
	require.Equal(t, KindScalar, r.Kind())
	assert.InDelta(t, want, r.Scalar(), 1e-5)
}
