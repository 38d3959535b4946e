// Package model defines the data model that formulas are evaluated over.
//
// # Categories
//
// A Categories value is an immutable set of sparse category identifiers
// kept in ascending order (zone numbers, employment classes, ...). Every identifier has
// a dense flat position in [0, Len()). Two vectors or matrices are
// compatible when they share the same Categories instance; equal contents
// are not enough.
//
//	zones := model.MustNewCategories(101, 102, 205)
//	zones.Flat(205)   // 2
//	zones.Sparse(0)   // 101
//
// # Vectors and Matrices
//
//   - Vector: dense float32 data indexed by one Categories
//   - Matrix: dense row-major float32 data indexed by row and column Categories
//   - Direction: Horizontal, Vertical or Unassigned orientation of a vector
//
// Constructors panic on contract violations (nil categories, mismatched
// buffer lengths). Out-of-range flat access panics like slice indexing.
//
// # Maps
//
// A Map aggregates data from a base Categories onto a destination
// Categories by summing along its edges.
package model
