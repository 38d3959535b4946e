package eval

import (
	"fmt"
	"math"

	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/internal/simd"
	"github.com/hupe1980/odcalc/model"
)

func (s *state) call(n *expr.Call) Result {
	args := make([]Result, len(n.Args))
	switch len(n.Args) {
	case 0:
	case 1:
		args[0] = s.eval(n.Args[0])
	default:
		tasks := make([]func(), len(n.Args))
		for i, a := range n.Args {
			tasks[i] = func() { args[i] = s.eval(a) }
		}
		s.ev.joiner.Join(tasks...)
	}

	for _, a := range args {
		if a.IsError() {
			return a
		}
	}

	if len(args) != n.Func.Arity() {
		return ErrorResult(mismatch(n.Func.String(), "expects %d argument(s), got %d", n.Func.Arity(), len(args)))
	}

	switch n.Func {
	case expr.FuncSumRows:
		return s.sumRows(args[0], false)
	case expr.FuncSumColumns:
		return s.sumColumns(args[0], false)
	case expr.FuncAvgRows:
		return s.sumRows(args[0], true)
	case expr.FuncAvgColumns:
		return s.sumColumns(args[0], true)
	case expr.FuncSum:
		return s.sum(args[0], false)
	case expr.FuncAvg:
		return s.sum(args[0], true)
	case expr.FuncAbs:
		return s.unary(args[0], func(v float32) float32 { return float32(math.Abs(float64(v))) }, simd.Abs)
	case expr.FuncLog:
		return s.unary(args[0], func(v float32) float32 { return float32(math.Log(float64(v))) }, simd.Log)
	case expr.FuncSqrt:
		return s.unary(args[0], func(v float32) float32 { return float32(math.Sqrt(float64(v))) }, simd.Sqrt)
	case expr.FuncTranspose:
		return s.transpose(args[0])
	case expr.FuncAsHorizontal:
		return asDirection(n.Func, args[0], model.Horizontal)
	case expr.FuncAsVertical:
		return asDirection(n.Func, args[0], model.Vertical)
	case expr.FuncMatrix:
		return s.expand(args[0])
	case expr.FuncIdentityMatrix:
		return s.squareLike(n.Func, args[0], true)
	case expr.FuncZeroMatrix:
		return s.squareLike(n.Func, args[0], false)
	case expr.FuncLength:
		return ScalarResult(float32(args[0].Len()))
	case expr.FuncLengthRows:
		return s.lengthAxis(n.Func, args[0], true)
	case expr.FuncLengthColumns:
		return s.lengthAxis(n.Func, args[0], false)
	case expr.FuncIf:
		return s.ifThenElse(args[0], args[1], args[2])
	case expr.FuncIfNaN:
		return s.ifNaN(args[0], args[1])
	case expr.FuncNormalize:
		return s.normalize(args[0])
	case expr.FuncNormalizeRows:
		return s.normalizeRows(args[0])
	case expr.FuncNormalizeColumns:
		return s.normalizeColumns(args[0])
	case expr.FuncE:
		return ScalarResult(math.E)
	case expr.FuncPI:
		return ScalarResult(math.Pi)
	default:
		return ErrorResult(fmt.Errorf("%w: function %s", ErrUnsupported, n.Func))
	}
}

func wrongArg(fn expr.Function, want string, got Result) Result {
	return ErrorResult(mismatch(fn.String(), "expects %s, got %s", want, got.kind))
}

// sumRows returns the Vertical vector of row totals, or row means.
func (s *state) sumRows(x Result, average bool) Result {
	fn := expr.FuncSumRows
	if average {
		fn = expr.FuncAvgRows
	}
	if x.kind != KindMatrix {
		return wrongArg(fn, "a matrix", x)
	}

	m := x.matrix
	out, err := s.newVector(m.RowCategories())
	if err != nil {
		return ErrorResult(err)
	}

	data := out.Data()
	cols := float32(m.Cols())
	s.rows(m.Rows(), m.Cols(), func(start, end int) {
		for r := start; r < end; r++ {
			data[r] = simd.Sum(m.Row(r))
			if average {
				data[r] /= cols
			}
		}
	})
	return VectorResult(out, model.Vertical, true)
}

// sumColumns returns the Horizontal vector of column totals, or column means.
func (s *state) sumColumns(x Result, average bool) Result {
	fn := expr.FuncSumColumns
	if average {
		fn = expr.FuncAvgColumns
	}
	if x.kind != KindMatrix {
		return wrongArg(fn, "a matrix", x)
	}

	m := x.matrix
	out, err := s.newVector(m.ColumnCategories())
	if err != nil {
		return ErrorResult(err)
	}

	s.columnSums(m, out.Data())
	if average {
		simd.DivScalar(out.Data(), out.Data(), float32(m.Rows()))
	}
	return VectorResult(out, model.Horizontal, true)
}

// columnSums accumulates the columns of m into dst. Workers own disjoint
// column ranges so no two of them touch the same output element.
func (s *state) columnSums(m *model.Matrix, dst []float32) {
	simd.Set(dst, 0)
	s.rows(m.Cols(), m.Rows(), func(start, end int) {
		part := dst[start:end]
		for r := range m.Rows() {
			simd.Add(part, part, m.Row(r)[start:end])
		}
	})
}

// total sums every element of a vector or matrix.
func (s *state) total(x Result) float32 {
	if x.kind != KindMatrix {
		return simd.Sum(x.data())
	}

	m := x.matrix
	if m.Len() < s.ev.opts.ParallelThreshold {
		return simd.Sum(m.Data())
	}

	partial := make([]float32, m.Rows())
	s.rows(m.Rows(), m.Cols(), func(start, end int) {
		for r := start; r < end; r++ {
			partial[r] = simd.Sum(m.Row(r))
		}
	})
	return simd.Sum(partial)
}

func (s *state) sum(x Result, average bool) Result {
	if x.kind == KindScalar {
		return x
	}

	t := s.total(x)
	if average {
		t /= float32(x.Len())
	}
	return ScalarResult(t)
}

func (s *state) transpose(x Result) Result {
	if x.kind != KindMatrix {
		return wrongArg(expr.FuncTranspose, "a matrix", x)
	}

	m := x.matrix
	n := m.Rows()

	if x.owned && n == m.Cols() {
		// Each worker swaps the pairs above the diagonal of its rows.
		data := m.Data()
		s.rows(n, n, func(start, end int) {
			for i := start; i < end; i++ {
				for j := i + 1; j < n; j++ {
					data[i*n+j], data[j*n+i] = data[j*n+i], data[i*n+j]
				}
			}
		})
		return MatrixResult(model.NewMatrixFrom(m.ColumnCategories(), m.RowCategories(), data), true)
	}

	out, err := s.newMatrix(m.ColumnCategories(), m.RowCategories())
	if err != nil {
		return ErrorResult(err)
	}

	src := m.Data()
	rows := m.Rows()
	s.rows(out.Rows(), out.Cols(), func(start, end int) {
		for c := start; c < end; c++ {
			dst := out.Row(c)
			for r := range rows {
				dst[r] = src[r*m.Cols()+c]
			}
		}
	})
	return MatrixResult(out, true)
}

func asDirection(fn expr.Function, x Result, dir model.Direction) Result {
	if x.kind != KindVector {
		return wrongArg(fn, "a vector", x)
	}
	return VectorResult(x.vector, dir, x.owned)
}

// expand builds a square matrix from a vector: a Horizontal vector becomes
// every row, a Vertical vector fills row r with element r.
func (s *state) expand(x Result) Result {
	if x.kind != KindVector {
		return wrongArg(expr.FuncMatrix, "a vector", x)
	}
	if x.dir == model.Unassigned {
		return ErrorResult(mismatch(expr.FuncMatrix.String(), "vector lacks directionality; use AsHorizontal or AsVertical"))
	}

	cats := x.vector.Categories()
	out, err := s.newMatrix(cats, cats)
	if err != nil {
		return ErrorResult(err)
	}

	v := x.vector.Data()
	dst := MatrixResult(out, true)
	s.apply(dst, func(d []float32, row int) {
		if x.dir == model.Horizontal {
			simd.Copy(d, v)
		} else {
			simd.Set(d, v[row])
		}
	})
	return dst
}

// squareLike returns an identity or zero matrix with the dimensions of a
// matrix, or square over a vector's categories.
func (s *state) squareLike(fn expr.Function, x Result, identity bool) Result {
	var m *model.Matrix
	switch x.kind {
	case KindMatrix:
		if x.owned {
			m = x.matrix
			m.Fill(0)
			break
		}
		var err error
		if m, err = s.newMatrix(x.matrix.RowCategories(), x.matrix.ColumnCategories()); err != nil {
			return ErrorResult(err)
		}
	case KindVector:
		var err error
		cats := x.vector.Categories()
		if m, err = s.newMatrix(cats, cats); err != nil {
			return ErrorResult(err)
		}
	default:
		return wrongArg(fn, "a vector or matrix", x)
	}

	if identity {
		for i := range min(m.Rows(), m.Cols()) {
			m.Set(i, i, 1)
		}
	}
	return MatrixResult(m, true)
}

// lengthAxis implements LengthRows and LengthColumns on a matrix. The count
// is written over the leading elements of the operand instead of the
// returned vector, which therefore stays all zeros. Borrowed operands are
// copied first so data sources are never written.
func (s *state) lengthAxis(fn expr.Function, x Result, rows bool) Result {
	if x.kind != KindMatrix {
		return wrongArg(fn, "a matrix", x)
	}

	m := x.matrix
	if !x.owned {
		if err := s.charge(m.Len()); err != nil {
			return ErrorResult(err)
		}
		m = m.Clone()
	}

	var (
		out   *model.Vector
		count int
		dir   model.Direction
		err   error
	)
	if rows {
		out, err = s.newVector(m.RowCategories())
		count, dir = m.Cols(), model.Vertical
	} else {
		out, err = s.newVector(m.ColumnCategories())
		count, dir = m.Rows(), model.Horizontal
	}
	if err != nil {
		return ErrorResult(err)
	}

	simd.Set(m.Data()[:min(out.Len(), m.Len())], float32(count))
	return VectorResult(out, dir, true)
}

func (s *state) ifThenElse(cond, t, f Result) Result {
	if t.kind != f.kind {
		return ErrorResult(mismatch(expr.FuncIf.String(), "branches are %s and %s", t.kind, f.kind))
	}

	if cond.kind == KindScalar {
		if cond.scalar > 0 {
			return t
		}
		return f
	}

	op := expr.FuncIf.String()
	out, err := s.combine(op, shapeOf(cond), shapeOf(t))
	if err == nil {
		out, err = s.combine(op, out, shapeOf(f))
	}
	if err != nil {
		return ErrorResult(err)
	}

	dst, err := s.target(out, cond, t, f)
	if err != nil {
		return ErrorResult(err)
	}

	s.apply(dst, func(d []float32, row int) {
		c, ta, fa := rowArg(cond, out, row), rowArg(t, out, row), rowArg(f, out, row)
		if c.scalar {
			pick := fa
			if c.c > 0 {
				pick = ta
			}
			fill(d, pick)
			return
		}

		switch {
		case ta.scalar && fa.scalar:
			simd.SelectScalars(d, c.s, ta.c, fa.c)
		case ta.scalar:
			simd.SelectScalarTrue(d, c.s, ta.c, fa.s)
		case fa.scalar:
			simd.SelectScalarFalse(d, c.s, ta.s, fa.c)
		default:
			simd.Select(d, c.s, ta.s, fa.s)
		}
	})
	return dst
}

func (s *state) ifNaN(x, repl Result) Result {
	if x.kind != repl.kind {
		return ErrorResult(mismatch(expr.FuncIfNaN.String(), "operands are %s and %s", x.kind, repl.kind))
	}

	if x.kind == KindScalar {
		if math.IsNaN(float64(x.scalar)) {
			return repl
		}
		return x
	}

	out, err := s.combine(expr.FuncIfNaN.String(), shapeOf(x), shapeOf(repl))
	if err != nil {
		return ErrorResult(err)
	}

	dst, err := s.target(out, x, repl)
	if err != nil {
		return ErrorResult(err)
	}

	s.apply(dst, func(d []float32, row int) {
		a, r := rowArg(x, out, row), rowArg(repl, out, row)
		switch {
		case a.scalar && math.IsNaN(float64(a.c)):
			fill(d, r)
		case a.scalar:
			simd.Set(d, a.c)
		case r.scalar:
			simd.ReplaceNaNScalar(d, a.s, r.c)
		default:
			simd.ReplaceNaN(d, a.s, r.s)
		}
	})
	return dst
}

// normalize divides every element by the total; a zero total yields zeros.
func (s *state) normalize(x Result) Result {
	if x.kind == KindScalar {
		if x.scalar == 0 {
			return ScalarResult(0)
		}
		return ScalarResult(x.scalar / x.scalar)
	}

	t := s.total(x)
	out := shapeOf(x)
	dst, err := s.target(out, x)
	if err != nil {
		return ErrorResult(err)
	}

	s.apply(dst, func(d []float32, row int) {
		if t == 0 {
			simd.Set(d, 0)
			return
		}
		simd.DivScalar(d, rowArg(x, out, row).s, t)
	})
	return dst
}

// normalizeRows divides each row by its total; zero rows become zeros.
func (s *state) normalizeRows(x Result) Result {
	if x.kind != KindMatrix {
		return wrongArg(expr.FuncNormalizeRows, "a matrix", x)
	}

	out := shapeOf(x)
	dst, err := s.target(out, x)
	if err != nil {
		return ErrorResult(err)
	}

	s.apply(dst, func(d []float32, row int) {
		src := x.matrix.Row(row)
		t := simd.Sum(src)
		if t == 0 {
			simd.Set(d, 0)
			return
		}
		simd.DivScalar(d, src, t)
	})
	return dst
}

// normalizeColumns divides each column by its total; zero columns become
// zeros.
func (s *state) normalizeColumns(x Result) Result {
	if x.kind != KindMatrix {
		return wrongArg(expr.FuncNormalizeColumns, "a matrix", x)
	}

	m := x.matrix
	if err := s.charge(m.Cols()); err != nil {
		return ErrorResult(err)
	}
	totals := make([]float32, m.Cols())
	s.columnSums(m, totals)

	out := shapeOf(x)
	dst, err := s.target(out, x)
	if err != nil {
		return ErrorResult(err)
	}

	s.apply(dst, func(d []float32, row int) {
		simd.DivOrZero(d, m.Row(row), totals)
	})
	return dst
}

// fill writes one operand row into d.
func fill(d []float32, a arg) {
	if a.scalar {
		simd.Set(d, a.c)
		return
	}
	simd.Copy(d, a.s)
}
