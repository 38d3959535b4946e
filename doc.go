// Package odcalc evaluates spreadsheet-like formulas over origin-destination
// matrices, category vectors and scalars.
//
// Formulas reference named data sources. They are compiled once into an
// optimized expression tree and evaluated with SIMD kernels, row-parallel
// matrix operations and fork-join evaluation of independent subtrees.
//
// # Quick Start
//
//	zones := model.SequentialCategories(1, 3)
//	trips := model.NewMatrixFrom(zones, zones, []float32{...})
//	cost := model.NewMatrixFrom(zones, zones, []float32{...})
//
//	engine, err := odcalc.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	total, err := engine.EvaluateScalar(ctx, "Sum(trips * cost)",
//	    eval.Matrix("trips", trips),
//	    eval.Matrix("cost", cost),
//	)
//
// # Formulas
//
// Operators by increasing precedence:
//
//	|            logical or
//	&            logical and
//	== !=        equality
//	< <= > >=    relational
//	+ -          additive
//	* /          multiplicative
//	^            power (right associative)
//	-x           negation
//
// Comparisons yield 1 or 0; logical operators and If treat values > 0 as
// true. Functions form a closed set, see expr.Functions.
//
// # Broadcasting
//
// Scalars combine with anything. A Horizontal vector applies to every row
// of a matrix, a Vertical vector to every column. Vectors without a
// direction must be tagged with AsHorizontal or AsVertical before they can
// be combined with a matrix.
//
// # Resource Control
//
// WithMemoryLimit bounds the intermediate buffers of all in-flight
// evaluations, WithMaxConcurrentEvaluations bounds how many run at once and
// WithEvaluationRate throttles how fast they may start.
package odcalc
