package odcalc_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/odcalc"
	"github.com/hupe1980/odcalc/eval"
	"github.com/hupe1980/odcalc/model"
)

// Example demonstrates evaluating a formula over two OD matrices.
func Example() {
	zones := model.SequentialCategories(1, 2)
	trips := model.NewMatrixFrom(zones, zones, []float32{10, 20, 30, 40})
	cost := model.NewMatrixFrom(zones, zones, []float32{1, 2, 3, 4})

	engine, err := odcalc.New()
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	total, err := engine.EvaluateScalar(context.Background(), "Sum(trips * cost)",
		eval.Matrix("trips", trips),
		eval.Matrix("cost", cost),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(total)
	// Output: 300
}

// Example_broadcast scales every row of a matrix by a per-column factor.
func Example_broadcast() {
	zones := model.SequentialCategories(1, 2)
	trips := model.NewMatrixFrom(zones, zones, []float32{10, 20, 30, 40})
	growth := model.NewVectorFrom(zones, []float32{1.5, 2})

	engine, err := odcalc.New()
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	m, err := engine.EvaluateMatrix(context.Background(), "trips * AsHorizontal(growth)",
		eval.Matrix("trips", trips),
		eval.Vector("growth", growth, model.Unassigned),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(m.Row(0), m.Row(1))
	// Output: [15 40] [45 80]
}

// Example_compile prints the optimized tree of a formula.
func Example_compile() {
	engine, err := odcalc.New()
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	ex, err := engine.Compile("A * B + C / 2")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(ex)
	fmt.Println(ex.Variables())
	// Output:
	// fma(A, B, (C * 0.5))
	// [A B C]
}

// Example_sumRows totals the trips leaving each origin.
func Example_sumRows() {
	zones := model.SequentialCategories(101, 3)
	trips := model.NewMatrixFrom(zones, zones, []float32{
		0, 5, 10,
		5, 0, 15,
		10, 15, 0,
	})

	engine, err := odcalc.New()
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	v, dir, err := engine.EvaluateVector(context.Background(), "SumRows(trips)", eval.Matrix("trips", trips))
	if err != nil {
		log.Fatal(err)
	}

	dest, err := v.Get(103)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(dir, v.Data(), dest)
	// Output: vertical [15 20 25] 25
}
