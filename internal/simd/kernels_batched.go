package simd

import "math"

// lanes is the number of elements processed per step by the batched kernels.
// Array views of this size let the compiler drop bounds checks and unroll.
const lanes = 8

const signBit = 1 << 31

func addBatched(dst, a, b []float32) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(b[i:])
		for j := range lanes {
			d[j] = x[j] + y[j]
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i] + b[i]
	}
}

func subBatched(dst, a, b []float32) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(b[i:])
		for j := range lanes {
			d[j] = x[j] - y[j]
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i] - b[i]
	}
}

func mulBatched(dst, a, b []float32) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(b[i:])
		for j := range lanes {
			d[j] = x[j] * y[j]
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i] * b[i]
	}
}

func divBatched(dst, a, b []float32) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(b[i:])
		for j := range lanes {
			d[j] = x[j] / y[j]
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i] / b[i]
	}
}

func addScalarBatched(dst, a []float32, s float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = x[j] + s
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i] + s
	}
}

func subScalarBatched(dst, a []float32, s float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = x[j] - s
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i] - s
	}
}

func scalarSubBatched(dst []float32, s float32, a []float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = s - x[j]
		}
	}
	for ; i < n; i++ {
		dst[i] = s - a[i]
	}
}

func mulScalarBatched(dst, a []float32, s float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = x[j] * s
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i] * s
	}
}

func divScalarBatched(dst, a []float32, s float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = x[j] / s
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i] / s
	}
}

func scalarDivBatched(dst []float32, s float32, a []float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = s / x[j]
		}
	}
	for ; i < n; i++ {
		dst[i] = s / a[i]
	}
}

func fmaBatched(dst, a, b, c []float32) {
	n := len(dst)
	a, b, c = a[:n], b[:n], c[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y, z := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(b[i:]), (*[lanes]float32)(c[i:])
		for j := range lanes {
			d[j] = x[j]*y[j] + z[j]
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i]*b[i] + c[i]
	}
}

func fmaScalarMulBatched(dst, a []float32, s float32, c []float32) {
	n := len(dst)
	a, c = a[:n], c[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, z := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(c[i:])
		for j := range lanes {
			d[j] = x[j]*s + z[j]
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i]*s + c[i]
	}
}

func fmaScalarAddBatched(dst, a, b []float32, s float32) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(b[i:])
		for j := range lanes {
			d[j] = x[j]*y[j] + s
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i]*b[i] + s
	}
}

func fmaScalarsBatched(dst, a []float32, s, t float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = x[j]*s + t
		}
	}
	for ; i < n; i++ {
		dst[i] = a[i]*s + t
	}
}

func negBatched(dst, a []float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = -x[j]
		}
	}
	for ; i < n; i++ {
		dst[i] = -a[i]
	}
}

func absBatched(dst, a []float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = math.Float32frombits(math.Float32bits(x[j]) &^ signBit)
		}
	}
	for ; i < n; i++ {
		dst[i] = math.Float32frombits(math.Float32bits(a[i]) &^ signBit)
	}
}

func sumBatched(a []float32) float32 {
	var acc [lanes]float64
	n := len(a)
	i := 0
	for ; i+lanes <= n; i += lanes {
		x := (*[lanes]float32)(a[i:])
		for j := range lanes {
			acc[j] += float64(x[j])
		}
	}

	var s float64
	for _, v := range acc {
		s += v
	}
	for ; i < n; i++ {
		s += float64(a[i])
	}
	return float32(s)
}

func setBatched(dst []float32, v float32) {
	var fill [lanes]float32
	for j := range fill {
		fill[j] = v
	}

	n := len(dst)
	i := 0
	for ; i+lanes <= n; i += lanes {
		*(*[lanes]float32)(dst[i:]) = fill
	}
	for ; i < n; i++ {
		dst[i] = v
	}
}

func powBatched(dst, a, b []float32) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(b[i:])
		for j := range lanes {
			d[j] = float32(math.Pow(float64(x[j]), float64(y[j])))
		}
	}
	for ; i < n; i++ {
		dst[i] = float32(math.Pow(float64(a[i]), float64(b[i])))
	}
}

func powScalarBatched(dst, a []float32, s float32) {
	n := len(dst)
	a = a[:n]
	e := float64(s)
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = float32(math.Pow(float64(x[j]), e))
		}
	}
	for ; i < n; i++ {
		dst[i] = float32(math.Pow(float64(a[i]), e))
	}
}

func scalarPowBatched(dst []float32, s float32, a []float32) {
	n := len(dst)
	a = a[:n]
	base := float64(s)
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = float32(math.Pow(base, float64(x[j])))
		}
	}
	for ; i < n; i++ {
		dst[i] = float32(math.Pow(base, float64(a[i])))
	}
}

func divOrZeroBatched(dst, a, b []float32) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(b[i:])
		for j := range lanes {
			d[j] = divOrZero(x[j], y[j])
		}
	}
	for ; i < n; i++ {
		dst[i] = divOrZero(a[i], b[i])
	}
}

func divOrZero(x, y float32) float32 {
	if y == 0 {
		return 0
	}
	return x / y
}

func logBatched(dst, a []float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = float32(math.Log(float64(x[j])))
		}
	}
	for ; i < n; i++ {
		dst[i] = float32(math.Log(float64(a[i])))
	}
}

func sqrtBatched(dst, a []float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = float32(math.Sqrt(float64(x[j])))
		}
	}
	for ; i < n; i++ {
		dst[i] = float32(math.Sqrt(float64(a[i])))
	}
}

// The comparison and logic kernels pick the predicate once per call. The
// lane helpers are small enough to inline, which turns pred into a direct
// comparison.

func compareBatched(op CmpOp, dst, a, b []float32) {
	switch op {
	case CmpEq:
		flagLanes(dst, a, b, func(x, y float32) bool { return x == y })
	case CmpNe:
		flagLanes(dst, a, b, func(x, y float32) bool { return x != y })
	case CmpLt:
		flagLanes(dst, a, b, func(x, y float32) bool { return x < y })
	case CmpLe:
		flagLanes(dst, a, b, func(x, y float32) bool { return x <= y })
	case CmpGt:
		flagLanes(dst, a, b, func(x, y float32) bool { return x > y })
	case CmpGe:
		flagLanes(dst, a, b, func(x, y float32) bool { return x >= y })
	default:
		panic("simd: unknown comparison")
	}
}

func compareScalarBatched(op CmpOp, dst, a []float32, s float32) {
	switch op {
	case CmpEq:
		flagScalarLanes(dst, a, s, func(x, y float32) bool { return x == y })
	case CmpNe:
		flagScalarLanes(dst, a, s, func(x, y float32) bool { return x != y })
	case CmpLt:
		flagScalarLanes(dst, a, s, func(x, y float32) bool { return x < y })
	case CmpLe:
		flagScalarLanes(dst, a, s, func(x, y float32) bool { return x <= y })
	case CmpGt:
		flagScalarLanes(dst, a, s, func(x, y float32) bool { return x > y })
	case CmpGe:
		flagScalarLanes(dst, a, s, func(x, y float32) bool { return x >= y })
	default:
		panic("simd: unknown comparison")
	}
}

func andBatched(dst, a, b []float32) {
	flagLanes(dst, a, b, func(x, y float32) bool { return x > 0 && y > 0 })
}

func andScalarBatched(dst, a []float32, s float32) {
	if s <= 0 || s != s {
		setBatched(dst, 0)
		return
	}
	flagScalarLanes(dst, a, 0, func(x, y float32) bool { return x > y })
}

func orBatched(dst, a, b []float32) {
	flagLanes(dst, a, b, func(x, y float32) bool { return x > 0 || y > 0 })
}

func orScalarBatched(dst, a []float32, s float32) {
	if s > 0 {
		setBatched(dst, 1)
		return
	}
	flagScalarLanes(dst, a, 0, func(x, y float32) bool { return x > y })
}

func flagLanes(dst, a, b []float32, pred func(x, y float32) bool) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(b[i:])
		for j := range lanes {
			d[j] = Truth(pred(x[j], y[j]))
		}
	}
	for ; i < n; i++ {
		dst[i] = Truth(pred(a[i], b[i]))
	}
}

func flagScalarLanes(dst, a []float32, s float32, pred func(x, y float32) bool) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = Truth(pred(x[j], s))
		}
	}
	for ; i < n; i++ {
		dst[i] = Truth(pred(a[i], s))
	}
}

func selectBatched(dst, cond, t, f []float32) {
	n := len(dst)
	cond, t, f = cond[:n], t[:n], f[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, c := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(cond[i:])
		x, y := (*[lanes]float32)(t[i:]), (*[lanes]float32)(f[i:])
		for j := range lanes {
			d[j] = pick(c[j], x[j], y[j])
		}
	}
	for ; i < n; i++ {
		dst[i] = pick(cond[i], t[i], f[i])
	}
}

func selectScalarTrueBatched(dst, cond []float32, t float32, f []float32) {
	n := len(dst)
	cond, f = cond[:n], f[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, c, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(cond[i:]), (*[lanes]float32)(f[i:])
		for j := range lanes {
			d[j] = pick(c[j], t, y[j])
		}
	}
	for ; i < n; i++ {
		dst[i] = pick(cond[i], t, f[i])
	}
}

func selectScalarFalseBatched(dst, cond, t []float32, f float32) {
	n := len(dst)
	cond, t = cond[:n], t[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, c, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(cond[i:]), (*[lanes]float32)(t[i:])
		for j := range lanes {
			d[j] = pick(c[j], x[j], f)
		}
	}
	for ; i < n; i++ {
		dst[i] = pick(cond[i], t[i], f)
	}
}

func selectScalarsBatched(dst, cond []float32, t, f float32) {
	n := len(dst)
	cond = cond[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, c := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(cond[i:])
		for j := range lanes {
			d[j] = pick(c[j], t, f)
		}
	}
	for ; i < n; i++ {
		dst[i] = pick(cond[i], t, f)
	}
}

func pick(cond, t, f float32) float32 {
	if cond > 0 {
		return t
	}
	return f
}

func replaceNaNBatched(dst, a, r []float32) {
	n := len(dst)
	a, r = a[:n], r[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x, y := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:]), (*[lanes]float32)(r[i:])
		for j := range lanes {
			d[j] = pick(Truth(x[j] != x[j]), y[j], x[j])
		}
	}
	for ; i < n; i++ {
		dst[i] = pick(Truth(a[i] != a[i]), r[i], a[i])
	}
}

func replaceNaNScalarBatched(dst, a []float32, r float32) {
	n := len(dst)
	a = a[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d, x := (*[lanes]float32)(dst[i:]), (*[lanes]float32)(a[i:])
		for j := range lanes {
			d[j] = pick(Truth(x[j] != x[j]), r, x[j])
		}
	}
	for ; i < n; i++ {
		dst[i] = pick(Truth(a[i] != a[i]), r, a[i])
	}
}
