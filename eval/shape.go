package eval

import (
	"fmt"

	"github.com/hupe1980/odcalc/model"
)

// shape describes the dimensions of a result without its data.
type shape struct {
	kind Kind
	dir  model.Direction
	// cats indexes a vector; rowCats and colCats index a matrix.
	cats    *model.Categories
	rowCats *model.Categories
	colCats *model.Categories
}

func shapeOf(r Result) shape {
	switch r.kind {
	case KindVector:
		return shape{kind: KindVector, dir: r.dir, cats: r.vector.Categories()}
	case KindMatrix:
		return shape{kind: KindMatrix, rowCats: r.matrix.RowCategories(), colCats: r.matrix.ColumnCategories()}
	default:
		return shape{kind: r.kind}
	}
}

func (sh shape) String() string {
	switch sh.kind {
	case KindVector:
		return fmt.Sprintf("%s vector of %d", sh.dir, sh.cats.Len())
	case KindMatrix:
		return fmt.Sprintf("%dx%d matrix", sh.rowCats.Len(), sh.colCats.Len())
	default:
		return sh.kind.String()
	}
}

// combine returns the shape two operands broadcast to.
func (s *state) combine(op string, a, b shape) (shape, error) {
	strict := s.ev.opts.StrictCategories

	switch {
	case a.kind == KindScalar:
		return b, nil
	case b.kind == KindScalar:
		return a, nil
	case a.kind == KindVector && b.kind == KindVector:
		if a.cats.Len() != b.cats.Len() {
			return shape{}, mismatch(op, "vector lengths %d and %d differ", a.cats.Len(), b.cats.Len())
		}
		if strict && !a.cats.Same(b.cats) {
			return shape{}, incompatible(op)
		}
		out := a
		if a.dir != b.dir {
			out.dir = model.Unassigned
		}
		return out, nil
	case a.kind == KindMatrix && b.kind == KindMatrix:
		if a.rowCats.Len() != b.rowCats.Len() || a.colCats.Len() != b.colCats.Len() {
			return shape{}, mismatch(op, "matrix dimensions %s and %s differ", a, b)
		}
		if strict && (!a.rowCats.Same(b.rowCats) || !a.colCats.Same(b.colCats)) {
			return shape{}, incompatible(op)
		}
		return a, nil
	case a.kind == KindVector:
		return b, s.checkBroadcast(op, a, b)
	default:
		return a, s.checkBroadcast(op, b, a)
	}
}

// checkBroadcast validates a vector against the matrix it is applied to.
func (s *state) checkBroadcast(op string, vec, mat shape) error {
	var axis *model.Categories
	switch vec.dir {
	case model.Horizontal:
		axis = mat.colCats
	case model.Vertical:
		axis = mat.rowCats
	default:
		return mismatch(op, "vector lacks directionality; use AsHorizontal or AsVertical to combine it with a matrix")
	}

	if vec.cats.Len() != axis.Len() {
		return mismatch(op, "%s does not fit %s", vec, mat)
	}
	if s.ev.opts.StrictCategories && !vec.cats.Same(axis) {
		return incompatible(op)
	}
	return nil
}

// arg is one operand's contribution to one output row: a slice of the row
// width or a single value for the whole row.
type arg struct {
	s      []float32
	c      float32
	scalar bool
}

// rowArg returns the part of r that lines up with row of out.
func rowArg(r Result, out shape, row int) arg {
	switch r.kind {
	case KindVector:
		data := r.vector.Data()
		if out.kind == KindMatrix && r.dir == model.Vertical {
			return arg{c: data[row], scalar: true}
		}
		return arg{s: data}
	case KindMatrix:
		return arg{s: r.matrix.Row(row)}
	default:
		return arg{c: r.scalar, scalar: true}
	}
}

// target returns the owned buffer a result of shape out is written into.
// The first owned operand with out's dimensions is reused in place;
// otherwise a new buffer is allocated.
func (s *state) target(out shape, operands ...Result) (Result, error) {
	for _, op := range operands {
		if !op.owned || !fits(op, out) {
			continue
		}

		switch out.kind {
		case KindVector:
			v := op.vector
			if !v.Categories().Same(out.cats) {
				v = model.NewVectorFrom(out.cats, v.Data())
			}
			return VectorResult(v, out.dir, true), nil
		case KindMatrix:
			m := op.matrix
			if !m.RowCategories().Same(out.rowCats) || !m.ColumnCategories().Same(out.colCats) {
				m = model.NewMatrixFrom(out.rowCats, out.colCats, m.Data())
			}
			return MatrixResult(m, true), nil
		}
	}

	switch out.kind {
	case KindVector:
		v, err := s.newVector(out.cats)
		if err != nil {
			return Result{}, err
		}
		return VectorResult(v, out.dir, true), nil
	case KindMatrix:
		m, err := s.newMatrix(out.rowCats, out.colCats)
		if err != nil {
			return Result{}, err
		}
		return MatrixResult(m, true), nil
	default:
		return Result{}, fmt.Errorf("%w: no buffer for %s", ErrUnsupported, out.kind)
	}
}

func fits(r Result, out shape) bool {
	switch out.kind {
	case KindVector:
		return r.kind == KindVector && r.vector.Len() == out.cats.Len()
	case KindMatrix:
		return r.kind == KindMatrix && r.matrix.Rows() == out.rowCats.Len() && r.matrix.Cols() == out.colCats.Len()
	default:
		return false
	}
}
