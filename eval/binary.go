package eval

import (
	"fmt"

	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/internal/simd"
)

var cmpOps = map[expr.BinaryOp]simd.CmpOp{
	expr.OpEqual:        simd.CmpEq,
	expr.OpNotEqual:     simd.CmpNe,
	expr.OpLess:         simd.CmpLt,
	expr.OpLessEqual:    simd.CmpLe,
	expr.OpGreater:      simd.CmpGt,
	expr.OpGreaterEqual: simd.CmpGe,
}

func (s *state) binary(op expr.BinaryOp, l, r Result) Result {
	if l.kind == KindScalar && r.kind == KindScalar {
		return ScalarResult(op.Apply(l.scalar, r.scalar))
	}

	if (op == expr.OpEqual || op == expr.OpNotEqual) && mixesVectorAndMatrix(l, r) {
		return ErrorResult(fmt.Errorf("%w: %s between a vector and a matrix", ErrUnsupported, op))
	}

	out, err := s.combine(op.String(), shapeOf(l), shapeOf(r))
	if err != nil {
		return ErrorResult(err)
	}

	dst, err := s.target(out, l, r)
	if err != nil {
		return ErrorResult(err)
	}

	s.apply(dst, func(d []float32, row int) {
		binaryKernel(op, d, rowArg(l, out, row), rowArg(r, out, row))
	})
	return dst
}

func mixesVectorAndMatrix(l, r Result) bool {
	return (l.kind == KindVector && r.kind == KindMatrix) || (l.kind == KindMatrix && r.kind == KindVector)
}

func binaryKernel(op expr.BinaryOp, dst []float32, a, b arg) {
	switch {
	case a.scalar && b.scalar:
		simd.Set(dst, op.Apply(a.c, b.c))
	case b.scalar:
		sliceScalar(op, dst, a.s, b.c)
	case a.scalar:
		scalarSlice(op, dst, a.c, b.s)
	default:
		sliceSlice(op, dst, a.s, b.s)
	}
}

func sliceSlice(op expr.BinaryOp, dst, a, b []float32) {
	switch op {
	case expr.OpAdd:
		simd.Add(dst, a, b)
	case expr.OpSubtract:
		simd.Sub(dst, a, b)
	case expr.OpMultiply:
		simd.Mul(dst, a, b)
	case expr.OpDivide:
		simd.Div(dst, a, b)
	case expr.OpExponent:
		simd.Pow(dst, a, b)
	case expr.OpAnd:
		simd.And(dst, a, b)
	case expr.OpOr:
		simd.Or(dst, a, b)
	default:
		simd.Compare(cmpOps[op], dst, a, b)
	}
}

func sliceScalar(op expr.BinaryOp, dst, a []float32, c float32) {
	switch op {
	case expr.OpAdd:
		simd.AddScalar(dst, a, c)
	case expr.OpSubtract:
		simd.SubScalar(dst, a, c)
	case expr.OpMultiply:
		simd.MulScalar(dst, a, c)
	case expr.OpDivide:
		simd.DivScalar(dst, a, c)
	case expr.OpExponent:
		simd.PowScalar(dst, a, c)
	case expr.OpAnd:
		simd.AndScalar(dst, a, c)
	case expr.OpOr:
		simd.OrScalar(dst, a, c)
	default:
		simd.CompareScalar(cmpOps[op], dst, a, c)
	}
}

func scalarSlice(op expr.BinaryOp, dst []float32, c float32, b []float32) {
	switch op {
	case expr.OpAdd:
		simd.AddScalar(dst, b, c)
	case expr.OpSubtract:
		simd.ScalarSub(dst, c, b)
	case expr.OpMultiply:
		simd.MulScalar(dst, b, c)
	case expr.OpDivide:
		simd.ScalarDiv(dst, c, b)
	case expr.OpExponent:
		simd.ScalarPow(dst, c, b)
	case expr.OpAnd:
		simd.AndScalar(dst, b, c)
	case expr.OpOr:
		simd.OrScalar(dst, b, c)
	default:
		simd.CompareScalar(cmpOps[op].Flip(), dst, b, c)
	}
}

// unary applies an elementwise function, in place when x is owned.
func (s *state) unary(x Result, scalar func(float32) float32, kernel func(dst, a []float32)) Result {
	if x.kind == KindScalar {
		return ScalarResult(scalar(x.scalar))
	}

	out := shapeOf(x)
	dst, err := s.target(out, x)
	if err != nil {
		return ErrorResult(err)
	}

	s.apply(dst, func(d []float32, row int) {
		kernel(d, rowArg(x, out, row).s)
	})
	return dst
}
