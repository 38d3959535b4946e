// Package eval evaluates compiled expression trees against named data
// sources.
//
// # Results
//
// Every node evaluates to a Result: a scalar, a vector with a Direction, a
// matrix, or an error. Vector and matrix results either borrow a data
// source's buffer or own a buffer created during evaluation. Borrowed
// buffers are never written; owned buffers are reused in place by the
// operation that consumes them.
//
// # Broadcasting
//
//   - scalar with anything: the scalar applies to every element
//   - vector with vector: equal length; the direction survives only when
//     both sides agree
//   - Horizontal vector with matrix: the vector is reused for every row
//   - Vertical vector with matrix: element r applies to all of row r
//   - matrix with matrix: equal dimensions
//
// Unassigned vectors cannot be combined with matrices; use AsHorizontal or
// AsVertical.
//
// By default operands are compatible when their category counts match, so
// data loaded separately for the same zone system combines without sharing
// one Categories value. StrictCategories restores the identity rule: the
// operands must then share the same Categories instances and anything else
// fails with model.ErrIncompatibleCategories.
//
// # Concurrency
//
// Arguments of multi-argument function calls and the three children of a
// fused multiply-add are evaluated concurrently; every other node evaluates
// its children in order. Matrix kernels are split across rows. Errors are
// reported from the leftmost failing child regardless of completion order.
package eval
