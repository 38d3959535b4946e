package eval

import (
	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/internal/simd"
)

func (s *state) fma(n *expr.FusedMultiplyAdd) Result {
	var x, y, z Result
	s.ev.joiner.Join(
		func() { x = s.eval(n.Mul1) },
		func() { y = s.eval(n.Mul2) },
		func() { z = s.eval(n.Add) },
	)

	for _, r := range [...]Result{x, y, z} {
		if r.IsError() {
			return r
		}
	}
	return s.multiplyAdd(x, y, z)
}

// multiplyAdd computes x*y + z. The product operands are validated against
// each other first, then the product against the addend.
func (s *state) multiplyAdd(x, y, z Result) Result {
	prod, err := s.combine("*", shapeOf(x), shapeOf(y))
	if err != nil {
		return ErrorResult(err)
	}

	out, err := s.combine("+", prod, shapeOf(z))
	if err != nil {
		return ErrorResult(err)
	}

	if out.kind == KindScalar {
		return ScalarResult(x.scalar*y.scalar + z.scalar)
	}

	dst, err := s.target(out, x, y, z)
	if err != nil {
		return ErrorResult(err)
	}

	s.apply(dst, func(d []float32, row int) {
		fmaKernel(d, rowArg(x, out, row), rowArg(y, out, row), rowArg(z, out, row))
	})
	return dst
}

func fmaKernel(dst []float32, a, b, c arg) {
	if a.scalar && !b.scalar {
		a, b = b, a
	}

	switch {
	case a.scalar:
		p := a.c * b.c
		if c.scalar {
			simd.Set(dst, p+c.c)
		} else {
			simd.AddScalar(dst, c.s, p)
		}
	case b.scalar:
		if c.scalar {
			simd.FMAScalars(dst, a.s, b.c, c.c)
		} else {
			simd.FMAScalarMul(dst, a.s, b.c, c.s)
		}
	default:
		if c.scalar {
			simd.FMAScalarAdd(dst, a.s, b.s, c.c)
		} else {
			simd.FMA(dst, a.s, b.s, c.s)
		}
	}
}
