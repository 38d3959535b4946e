package simd

// Kernel function pointers, set once at init.
// Generic implementations are the default; platform-specific init()
// functions override them with lane-batched versions.
var (
	kernelAdd          = addGeneric
	kernelSub          = subGeneric
	kernelMul          = mulGeneric
	kernelDiv          = divGeneric
	kernelAddScalar    = addScalarGeneric
	kernelSubScalar    = subScalarGeneric
	kernelScalarSub    = scalarSubGeneric
	kernelMulScalar    = mulScalarGeneric
	kernelDivScalar    = divScalarGeneric
	kernelScalarDiv    = scalarDivGeneric
	kernelFMA          = fmaGeneric
	kernelFMAScalarMul = fmaScalarMulGeneric
	kernelFMAScalarAdd = fmaScalarAddGeneric
	kernelFMAScalars   = fmaScalarsGeneric
	kernelNeg          = negGeneric
	kernelAbs          = absGeneric
	kernelSum          = sumGeneric
	kernelSet          = setGeneric

	kernelPow               = powGeneric
	kernelPowScalar         = powScalarGeneric
	kernelScalarPow         = scalarPowGeneric
	kernelDivOrZero         = divOrZeroGeneric
	kernelLog               = logGeneric
	kernelSqrt              = sqrtGeneric
	kernelCompare           = compareGeneric
	kernelCompareScalar     = compareScalarGeneric
	kernelAnd               = andGeneric
	kernelAndScalar         = andScalarGeneric
	kernelOr                = orGeneric
	kernelOrScalar          = orScalarGeneric
	kernelSelect            = selectGeneric
	kernelSelectScalarTrue  = selectScalarTrueGeneric
	kernelSelectScalarFalse = selectScalarFalseGeneric
	kernelSelectScalars     = selectScalarsGeneric
	kernelReplaceNaN        = replaceNaNGeneric
	kernelReplaceNaNScalar  = replaceNaNScalarGeneric

	// batched is true once the lane-batched kernels are installed.
	batched bool
)

// ============================================================================
// Arithmetic
// ============================================================================

// Add computes dst[i] = a[i] + b[i].
func Add(dst, a, b []float32) { kernelAdd(dst, a, b) }

// Sub computes dst[i] = a[i] - b[i].
func Sub(dst, a, b []float32) { kernelSub(dst, a, b) }

// Mul computes dst[i] = a[i] * b[i].
func Mul(dst, a, b []float32) { kernelMul(dst, a, b) }

// Div computes dst[i] = a[i] / b[i].
func Div(dst, a, b []float32) { kernelDiv(dst, a, b) }

// AddScalar computes dst[i] = a[i] + s.
func AddScalar(dst, a []float32, s float32) { kernelAddScalar(dst, a, s) }

// SubScalar computes dst[i] = a[i] - s.
func SubScalar(dst, a []float32, s float32) { kernelSubScalar(dst, a, s) }

// ScalarSub computes dst[i] = s - a[i].
func ScalarSub(dst []float32, s float32, a []float32) { kernelScalarSub(dst, s, a) }

// MulScalar computes dst[i] = a[i] * s.
func MulScalar(dst, a []float32, s float32) { kernelMulScalar(dst, a, s) }

// DivScalar computes dst[i] = a[i] / s.
func DivScalar(dst, a []float32, s float32) { kernelDivScalar(dst, a, s) }

// ScalarDiv computes dst[i] = s / a[i].
func ScalarDiv(dst []float32, s float32, a []float32) { kernelScalarDiv(dst, s, a) }

// Pow computes dst[i] = a[i] ^ b[i].
func Pow(dst, a, b []float32) { kernelPow(dst, a, b) }

// PowScalar computes dst[i] = a[i] ^ s.
func PowScalar(dst, a []float32, s float32) { kernelPowScalar(dst, a, s) }

// ScalarPow computes dst[i] = s ^ a[i].
func ScalarPow(dst []float32, s float32, a []float32) { kernelScalarPow(dst, s, a) }

// DivOrZero computes dst[i] = a[i] / b[i], or 0 where b[i] == 0.
func DivOrZero(dst, a, b []float32) { kernelDivOrZero(dst, a, b) }

// ============================================================================
// Fused multiply-add
// ============================================================================

// FMA computes dst[i] = a[i]*b[i] + c[i].
func FMA(dst, a, b, c []float32) { kernelFMA(dst, a, b, c) }

// FMAScalarMul computes dst[i] = a[i]*s + c[i].
func FMAScalarMul(dst, a []float32, s float32, c []float32) { kernelFMAScalarMul(dst, a, s, c) }

// FMAScalarAdd computes dst[i] = a[i]*b[i] + s.
func FMAScalarAdd(dst, a, b []float32, s float32) { kernelFMAScalarAdd(dst, a, b, s) }

// FMAScalars computes dst[i] = a[i]*s + t.
func FMAScalars(dst, a []float32, s, t float32) { kernelFMAScalars(dst, a, s, t) }

// ============================================================================
// Unary
// ============================================================================

// Neg computes dst[i] = -a[i].
func Neg(dst, a []float32) { kernelNeg(dst, a) }

// Abs computes dst[i] = |a[i]|.
func Abs(dst, a []float32) { kernelAbs(dst, a) }

// Log computes the natural logarithm of every element.
func Log(dst, a []float32) { kernelLog(dst, a) }

// Sqrt computes the square root of every element.
func Sqrt(dst, a []float32) { kernelSqrt(dst, a) }

// ============================================================================
// Reductions and fills
// ============================================================================

// Sum returns the sum of all elements, accumulated in float64.
func Sum(a []float32) float32 { return kernelSum(a) }

// Set stores v into every element of dst.
func Set(dst []float32, v float32) { kernelSet(dst, v) }

// Copy copies src into dst.
func Copy(dst, src []float32) { copy(dst, src[:len(dst)]) }

// ============================================================================
// Logic and selection
// ============================================================================

// Compare computes dst[i] = 1 if a[i] op b[i] holds, else 0.
func Compare(op CmpOp, dst, a, b []float32) { kernelCompare(op, dst, a, b) }

// CompareScalar computes dst[i] = 1 if a[i] op s holds, else 0.
// Use op.Flip() for s op a[i].
func CompareScalar(op CmpOp, dst, a []float32, s float32) { kernelCompareScalar(op, dst, a, s) }

// And computes dst[i] = 1 if a[i] > 0 and b[i] > 0, else 0.
func And(dst, a, b []float32) { kernelAnd(dst, a, b) }

// AndScalar computes dst[i] = 1 if a[i] > 0 and s > 0, else 0.
func AndScalar(dst, a []float32, s float32) { kernelAndScalar(dst, a, s) }

// Or computes dst[i] = 1 if a[i] > 0 or b[i] > 0, else 0.
func Or(dst, a, b []float32) { kernelOr(dst, a, b) }

// OrScalar computes dst[i] = 1 if a[i] > 0 or s > 0, else 0.
func OrScalar(dst, a []float32, s float32) { kernelOrScalar(dst, a, s) }

// Select computes dst[i] = t[i] if cond[i] > 0, else f[i].
func Select(dst, cond, t, f []float32) { kernelSelect(dst, cond, t, f) }

// SelectScalarTrue computes dst[i] = t if cond[i] > 0, else f[i].
func SelectScalarTrue(dst, cond []float32, t float32, f []float32) { kernelSelectScalarTrue(dst, cond, t, f) }

// SelectScalarFalse computes dst[i] = t[i] if cond[i] > 0, else f.
func SelectScalarFalse(dst, cond, t []float32, f float32) { kernelSelectScalarFalse(dst, cond, t, f) }

// SelectScalars computes dst[i] = t if cond[i] > 0, else f.
func SelectScalars(dst, cond []float32, t, f float32) { kernelSelectScalars(dst, cond, t, f) }

// ReplaceNaN computes dst[i] = r[i] where a[i] is NaN, else a[i].
func ReplaceNaN(dst, a, r []float32) { kernelReplaceNaN(dst, a, r) }

// ReplaceNaNScalar computes dst[i] = r where a[i] is NaN, else a[i].
func ReplaceNaNScalar(dst, a []float32, r float32) { kernelReplaceNaNScalar(dst, a, r) }
