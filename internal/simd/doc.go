// Package simd provides the elementwise float32 kernels formulas are
// evaluated with.
//
// # Dispatch
//
// Every kernel except Copy is called through a package-level function
// pointer. The generic scalar loops are the default. When the platform init
// finds a vector extension it installs lane-batched variants, which the
// compiler unrolls into wide loads. ODCALC_SIMD=generic or =batched forces a
// family at startup; building with -tags noasm pins the generic loops.
//
// # Operations
//
//   - Arithmetic: Add, Sub, Mul, Div, Pow with vector/scalar forms
//   - Fused: FMA and its scalar operand forms
//   - Unary: Neg, Abs, Log, Sqrt
//   - Logic: Compare, And, Or (true is 1, an operand is true when > 0)
//   - Selection: Select, ReplaceNaN, DivOrZero
//   - Utility: Set, Sum
//
// Kernels write len(dst) elements and read the same number from every
// slice operand. dst may alias any operand. Kernels are safe to call
// concurrently on disjoint destination ranges.
package simd
