package eval

import (
	"fmt"

	"github.com/hupe1980/odcalc/model"
)

// Kind is the variant held by a Result.
type Kind uint8

// Result kinds.
const (
	KindInvalid Kind = iota
	KindScalar
	KindVector
	KindMatrix
	KindError
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindError:
		return "error"
	default:
		return "invalid"
	}
}

// Result is the value a node evaluates to.
type Result struct {
	kind   Kind
	scalar float32
	vector *model.Vector
	matrix *model.Matrix
	dir    model.Direction
	owned  bool
	err    error
}

// ScalarResult wraps a scalar.
func ScalarResult(v float32) Result {
	return Result{kind: KindScalar, scalar: v}
}

// VectorResult wraps a vector. owned marks buffers created during
// evaluation that consumers may overwrite.
func VectorResult(v *model.Vector, dir model.Direction, owned bool) Result {
	return Result{kind: KindVector, vector: v, dir: dir, owned: owned}
}

// MatrixResult wraps a matrix. owned marks buffers created during
// evaluation that consumers may overwrite.
func MatrixResult(m *model.Matrix, owned bool) Result {
	return Result{kind: KindMatrix, matrix: m, owned: owned}
}

// ErrorResult wraps an evaluation error.
func ErrorResult(err error) Result {
	return Result{kind: KindError, err: err}
}

// Kind returns the variant.
func (r Result) Kind() Kind { return r.kind }

// IsError reports whether the result is an error.
func (r Result) IsError() bool { return r.kind == KindError }

// Err returns the error of an error result, or nil.
func (r Result) Err() error { return r.err }

// Scalar returns the value of a scalar result.
func (r Result) Scalar() float32 { return r.scalar }

// Vector returns the vector of a vector result, or nil.
func (r Result) Vector() *model.Vector { return r.vector }

// Direction returns the orientation of a vector result.
func (r Result) Direction() model.Direction { return r.dir }

// Matrix returns the matrix of a matrix result, or nil.
func (r Result) Matrix() *model.Matrix { return r.matrix }

// Owned reports whether the buffer was created during evaluation.
func (r Result) Owned() bool { return r.owned }

// Len returns the number of elements: 1 for scalars, 0 for errors.
func (r Result) Len() int {
	switch r.kind {
	case KindScalar:
		return 1
	case KindVector:
		return r.vector.Len()
	case KindMatrix:
		return r.matrix.Len()
	default:
		return 0
	}
}

// Materialize returns r with an owned buffer, copying borrowed data.
func (r Result) Materialize() Result {
	if r.owned {
		return r
	}
	switch r.kind {
	case KindVector:
		return VectorResult(r.vector.Clone(), r.dir, true)
	case KindMatrix:
		return MatrixResult(r.matrix.Clone(), true)
	default:
		return r
	}
}

// String returns a short description of the result.
func (r Result) String() string {
	switch r.kind {
	case KindScalar:
		return fmt.Sprintf("scalar(%g)", r.scalar)
	case KindVector:
		return fmt.Sprintf("vector(%d, %s)", r.vector.Len(), r.dir)
	case KindMatrix:
		return fmt.Sprintf("matrix(%dx%d)", r.matrix.Rows(), r.matrix.Cols())
	case KindError:
		return fmt.Sprintf("error(%v)", r.err)
	default:
		return "invalid"
	}
}

func (r Result) data() []float32 {
	switch r.kind {
	case KindVector:
		return r.vector.Data()
	case KindMatrix:
		return r.matrix.Data()
	default:
		return nil
	}
}
