// Package testutil provides testing utilities for odcalc.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random data generators for vectors and matrices and
// category helpers.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	m := rng.Matrix(testutil.Zones(100), testutil.Zones(100), 0, 10)
//	trips := rng.SkewedMatrix(zones, zones, 1.5, 1000)
//
// # Categories
//
//	zones := testutil.Zones(50)          // ids 1..50
//	cats := testutil.Categories(3, 7, 9) // panics on invalid input
package testutil
