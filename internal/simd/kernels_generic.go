package simd

import "math"

func addGeneric(dst, a, b []float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subGeneric(dst, a, b []float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulGeneric(dst, a, b []float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divGeneric(dst, a, b []float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

func addScalarGeneric(dst, a []float32, s float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = a[i] + s
	}
}

func subScalarGeneric(dst, a []float32, s float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = a[i] - s
	}
}

func scalarSubGeneric(dst []float32, s float32, a []float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = s - a[i]
	}
}

func mulScalarGeneric(dst, a []float32, s float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = a[i] * s
	}
}

func divScalarGeneric(dst, a []float32, s float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = a[i] / s
	}
}

func scalarDivGeneric(dst []float32, s float32, a []float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = s / a[i]
	}
}

func powGeneric(dst, a, b []float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = float32(math.Pow(float64(a[i]), float64(b[i])))
	}
}

func powScalarGeneric(dst, a []float32, s float32) {
	a = a[:len(dst)]
	e := float64(s)
	for i := range dst {
		dst[i] = float32(math.Pow(float64(a[i]), e))
	}
}

func scalarPowGeneric(dst []float32, s float32, a []float32) {
	a = a[:len(dst)]
	base := float64(s)
	for i := range dst {
		dst[i] = float32(math.Pow(base, float64(a[i])))
	}
}

func divOrZeroGeneric(dst, a, b []float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		if b[i] == 0 {
			dst[i] = 0
			continue
		}
		dst[i] = a[i] / b[i]
	}
}

func fmaGeneric(dst, a, b, c []float32) {
	a, b, c = a[:len(dst)], b[:len(dst)], c[:len(dst)]
	for i := range dst {
		dst[i] = a[i]*b[i] + c[i]
	}
}

func fmaScalarMulGeneric(dst, a []float32, s float32, c []float32) {
	a, c = a[:len(dst)], c[:len(dst)]
	for i := range dst {
		dst[i] = a[i]*s + c[i]
	}
}

func fmaScalarAddGeneric(dst, a, b []float32, s float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = a[i]*b[i] + s
	}
}

func fmaScalarsGeneric(dst, a []float32, s, t float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = a[i]*s + t
	}
}

func negGeneric(dst, a []float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = -a[i]
	}
}

func absGeneric(dst, a []float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = math.Float32frombits(math.Float32bits(a[i]) &^ signBit)
	}
}

func logGeneric(dst, a []float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = float32(math.Log(float64(a[i])))
	}
}

func sqrtGeneric(dst, a []float32) {
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = float32(math.Sqrt(float64(a[i])))
	}
}

func sumGeneric(a []float32) float32 {
	var s float64
	for _, v := range a {
		s += float64(v)
	}
	return float32(s)
}

func setGeneric(dst []float32, v float32) {
	for i := range dst {
		dst[i] = v
	}
}

func compareGeneric(op CmpOp, dst, a, b []float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	switch op {
	case CmpEq:
		for i := range dst {
			dst[i] = Truth(a[i] == b[i])
		}
	case CmpNe:
		for i := range dst {
			dst[i] = Truth(a[i] != b[i])
		}
	case CmpLt:
		for i := range dst {
			dst[i] = Truth(a[i] < b[i])
		}
	case CmpLe:
		for i := range dst {
			dst[i] = Truth(a[i] <= b[i])
		}
	case CmpGt:
		for i := range dst {
			dst[i] = Truth(a[i] > b[i])
		}
	case CmpGe:
		for i := range dst {
			dst[i] = Truth(a[i] >= b[i])
		}
	default:
		panic("simd: unknown comparison")
	}
}

func compareScalarGeneric(op CmpOp, dst, a []float32, s float32) {
	a = a[:len(dst)]
	switch op {
	case CmpEq:
		for i := range dst {
			dst[i] = Truth(a[i] == s)
		}
	case CmpNe:
		for i := range dst {
			dst[i] = Truth(a[i] != s)
		}
	case CmpLt:
		for i := range dst {
			dst[i] = Truth(a[i] < s)
		}
	case CmpLe:
		for i := range dst {
			dst[i] = Truth(a[i] <= s)
		}
	case CmpGt:
		for i := range dst {
			dst[i] = Truth(a[i] > s)
		}
	case CmpGe:
		for i := range dst {
			dst[i] = Truth(a[i] >= s)
		}
	default:
		panic("simd: unknown comparison")
	}
}

func andGeneric(dst, a, b []float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = Truth(a[i] > 0 && b[i] > 0)
	}
}

func andScalarGeneric(dst, a []float32, s float32) {
	if s <= 0 || s != s {
		setGeneric(dst, 0)
		return
	}
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = Truth(a[i] > 0)
	}
}

func orGeneric(dst, a, b []float32) {
	a, b = a[:len(dst)], b[:len(dst)]
	for i := range dst {
		dst[i] = Truth(a[i] > 0 || b[i] > 0)
	}
}

func orScalarGeneric(dst, a []float32, s float32) {
	if s > 0 {
		setGeneric(dst, 1)
		return
	}
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = Truth(a[i] > 0)
	}
}

func selectGeneric(dst, cond, t, f []float32) {
	cond, t, f = cond[:len(dst)], t[:len(dst)], f[:len(dst)]
	for i := range dst {
		if cond[i] > 0 {
			dst[i] = t[i]
		} else {
			dst[i] = f[i]
		}
	}
}

func selectScalarTrueGeneric(dst, cond []float32, t float32, f []float32) {
	cond, f = cond[:len(dst)], f[:len(dst)]
	for i := range dst {
		if cond[i] > 0 {
			dst[i] = t
		} else {
			dst[i] = f[i]
		}
	}
}

func selectScalarFalseGeneric(dst, cond, t []float32, f float32) {
	cond, t = cond[:len(dst)], t[:len(dst)]
	for i := range dst {
		if cond[i] > 0 {
			dst[i] = t[i]
		} else {
			dst[i] = f
		}
	}
}

func selectScalarsGeneric(dst, cond []float32, t, f float32) {
	cond = cond[:len(dst)]
	for i := range dst {
		if cond[i] > 0 {
			dst[i] = t
		} else {
			dst[i] = f
		}
	}
}

func replaceNaNGeneric(dst, a, r []float32) {
	a, r = a[:len(dst)], r[:len(dst)]
	for i := range dst {
		if a[i] != a[i] {
			dst[i] = r[i]
		} else {
			dst[i] = a[i]
		}
	}
}

func replaceNaNScalarGeneric(dst, a []float32, r float32) {
	a = a[:len(dst)]
	for i := range dst {
		if a[i] != a[i] {
			dst[i] = r
		} else {
			dst[i] = a[i]
		}
	}
}
