package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/model"
	"github.com/hupe1980/odcalc/testutil"
)

func TestElementwiseFunctions(t *testing.T) {
	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			src := fixtureSources()

			requireMatrix(t, run(t, ev, "Abs(A - B)", src...), []float32{1, 2}, []float32{3, 4})
			requireMatrix(t, run(t, ev, "Sqrt(A * A)", src...), []float32{1, 2}, []float32{3, 4})
			requireMatrix(t, run(t, ev, "Log(A) - Log(A)", src...), []float32{0, 0}, []float32{0, 0})
			requireMatrix(t, run(t, ev, "Log(E() ^ A)", src...), []float32{1, 2}, []float32{3, 4})
		})
	}
}

func TestTranspose(t *testing.T) {
	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			src := fixtureSources()

			requireMatrix(t, run(t, ev, "Transpose(A)", src...), []float32{1, 3}, []float32{2, 4})
			// Owned square operand: transposed in place.
			requireMatrix(t, run(t, ev, "Transpose(A + B)", src...), []float32{3, 9}, []float32{6, 12})
			requireMatrix(t, run(t, ev, "Transpose(Transpose(A))", src...), []float32{1, 2}, []float32{3, 4})
		})
	}

	a, _ := fixture()
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Data())
}

func TestTransposeCategories(t *testing.T) {
	rows := testutil.Categories(1, 2, 3)
	cols := testutil.Categories(7, 8, 9)
	m := model.NewMatrixFrom(rows, cols, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9})

	ev := New()
	defer ev.Close()

	r := run(t, ev, "Transpose(M * 1)", Matrix("M", m))
	require.False(t, r.IsError(), "%v", r.Err())
	assert.Same(t, cols, r.Matrix().RowCategories())
	assert.Same(t, rows, r.Matrix().ColumnCategories())
	assert.Equal(t, []float32{1, 4, 7, 2, 5, 8, 3, 6, 9}, r.Matrix().Data())
}

func TestMatrixFromVector(t *testing.T) {
	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			src := broadcastSources()

			requireMatrix(t, run(t, ev, "Matrix(H)", src...), []float32{10, 20}, []float32{10, 20})
			requireMatrix(t, run(t, ev, "Matrix(V)", src...), []float32{10, 10}, []float32{20, 20})
			requireMatrix(t, run(t, ev, "Matrix(SumColumns(A))", src...), []float32{4, 6}, []float32{4, 6})
		})
	}
}

func TestIdentityAndZeroMatrix(t *testing.T) {
	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			src := broadcastSources()

			requireMatrix(t, run(t, ev, "IdentityMatrix(A)", src...), []float32{1, 0}, []float32{0, 1})
			requireMatrix(t, run(t, ev, "IdentityMatrix(A * 3)", src...), []float32{1, 0}, []float32{0, 1})
			requireMatrix(t, run(t, ev, "IdentityMatrix(H)", src...), []float32{1, 0}, []float32{0, 1})
			requireMatrix(t, run(t, ev, "ZeroMatrix(A + B)", src...), []float32{0, 0}, []float32{0, 0})
			requireMatrix(t, run(t, ev, "ZeroMatrix(V)", src...), []float32{0, 0}, []float32{0, 0})

			r := run(t, ev, "ZeroMatrix(3)", src...)
			assert.ErrorIs(t, r.Err(), ErrTypeMismatch)
		})
	}

	a, _ := fixture()
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Data())
}

// LengthRows and LengthColumns write the count over the operand and return
// an all-zero vector. Data sources stay untouched.
func TestLengthAxis(t *testing.T) {
	a, _ := fixture()
	rect := model.NewMatrixFrom(testutil.Zones(2), testutil.Zones(3), []float32{1, 2, 3, 4, 5, 6})
	src := []Source{Matrix("A", a), Matrix("R", rect)}

	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			requireVector(t, run(t, ev, "LengthRows(A)", src...), model.Vertical, 0, 0)
			requireVector(t, run(t, ev, "LengthColumns(A)", src...), model.Horizontal, 0, 0)
			requireVector(t, run(t, ev, "LengthRows(R)", src...), model.Vertical, 0, 0)
			requireVector(t, run(t, ev, "LengthColumns(R)", src...), model.Horizontal, 0, 0, 0)
			requireVector(t, run(t, ev, "LengthRows(R * 2)", src...), model.Vertical, 0, 0)
			requireScalar(t, run(t, ev, "Sum(LengthColumns(R + 1))", src...), 0)

			assert.Equal(t, []float32{1, 2, 3, 4}, a.Data())
			assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, rect.Data())
		})
	}
}

func TestLengthAxisOverwritesOwnedOperand(t *testing.T) {
	a, _ := fixture()
	ev := New()
	defer ev.Close()

	s := &state{ev: ev}
	owned := MatrixResult(a.Clone(), true)

	r := s.lengthAxis(expr.FuncLengthRows, owned, true)
	require.False(t, r.IsError())
	assert.Equal(t, []float32{0, 0}, r.Vector().Data())
	assert.Equal(t, []float32{2, 2, 3, 4}, owned.Matrix().Data())
}

func TestIf(t *testing.T) {
	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			src := broadcastSources()

			requireMatrix(t, run(t, ev, "If(A > 2, A, ZeroMatrix(A))", src...), []float32{0, 0}, []float32{3, 4})
			requireMatrix(t, run(t, ev, "If(A > 2, A, B)", src...), []float32{2, 4}, []float32{3, 4})
			requireMatrix(t, run(t, ev, "If(A <= 2, IdentityMatrix(A), B)", src...), []float32{1, 0}, []float32{6, 8})
			requireMatrix(t, run(t, ev, "If(SumRows(A) > 4, A, B)", src...), []float32{2, 4}, []float32{3, 4})
			requireMatrix(t, run(t, ev, "If(H > 15, A, B)", src...), []float32{2, 2}, []float32{6, 4})
			requireMatrix(t, run(t, ev, "If(1, A, B)", src...), []float32{1, 2}, []float32{3, 4})
			requireMatrix(t, run(t, ev, "If(-1, A, B)", src...), []float32{2, 4}, []float32{6, 8})
			requireVector(t, run(t, ev, "If(H > 15, H, H * 0)", src...), model.Horizontal, 0, 20)
			requireVector(t, run(t, ev, "If(H > 15, H, V)", src...), model.Unassigned, 10, 20)
			requireScalar(t, run(t, ev, "If(0, 1, 2)", src...), 2)

			r := run(t, ev, "If(A > 2, A, 0)", src...)
			assert.ErrorIs(t, r.Err(), ErrTypeMismatch)
		})
	}
}

func TestIfNaN(t *testing.T) {
	zones := testutil.Zones(2)
	nan := float32(math.NaN())
	n := model.NewMatrixFrom(zones, zones, []float32{nan, 1, 2, nan})

	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			src := append(fixtureSources(), Matrix("N", n), Scalar("s", nan))

			requireMatrix(t, run(t, ev, "IfNaN(N, A)", src...), []float32{1, 1}, []float32{2, 4})
			requireMatrix(t, run(t, ev, "IfNaN(N * 2, B)", src...), []float32{2, 2}, []float32{4, 8})
			requireScalar(t, run(t, ev, "IfNaN(s, 7)", src...), 7)
			requireScalar(t, run(t, ev, "IfNaN(3, 7)", src...), 3)
		})
	}
}

func TestNormalize(t *testing.T) {
	zones := testutil.Zones(2)
	z := model.NewMatrixFrom(zones, zones, []float32{0, 0, 1, 3})

	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			src := append(fixtureSources(), Matrix("Z", z))

			requireMatrix(t, run(t, ev, "Normalize(B)", src...), []float32{0.1, 0.2}, []float32{0.3, 0.4})
			requireMatrix(t, run(t, ev, "Normalize(A - A)", src...), []float32{0, 0}, []float32{0, 0})
			requireMatrix(t, run(t, ev, "NormalizeRows(Z)", src...), []float32{0, 0}, []float32{0.25, 0.75})
			requireMatrix(t, run(t, ev, "NormalizeColumns(Z)", src...), []float32{0, 0}, []float32{1, 1})
			requireMatrix(t, run(t, ev, "NormalizeRows(A)", src...), []float32{1.0 / 3, 2.0 / 3}, []float32{3.0 / 7, 4.0 / 7})
			requireMatrix(t, run(t, ev, "NormalizeColumns(A * 1)", src...), []float32{0.25, 2.0 / 6}, []float32{0.75, 4.0 / 6})
			requireScalar(t, run(t, ev, "Normalize(5)", src...), 1)
			requireScalar(t, run(t, ev, "Normalize(0)", src...), 0)
			requireScalar(t, run(t, ev, "Sum(Normalize(SumRows(A)))", src...), 1)

			r := run(t, ev, "NormalizeRows(SumRows(A))", src...)
			assert.ErrorIs(t, r.Err(), ErrTypeMismatch)
		})
	}

	assert.Equal(t, []float32{0, 0, 1, 3}, z.Data())
}
