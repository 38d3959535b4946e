package model

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/odcalc/internal/conv"
	"github.com/hupe1980/odcalc/internal/simd"
)

// Edge connects a base flat position to a destination flat position.
type Edge struct {
	Base int
	Dest int
}

// Map aggregates data indexed by a base Categories onto a destination
// Categories. A base category may feed several destinations and several
// base categories may feed one destination.
type Map struct {
	base  *Categories
	dest  *Categories
	edges []Edge
}

// NewMap validates edges against both Categories. It panics if base or dest
// is nil.
func NewMap(base, dest *Categories, edges []Edge) (*Map, error) {
	if base == nil || dest == nil {
		panic("model: nil categories")
	}

	for i, e := range edges {
		if e.Base < 0 || e.Base >= base.Len() || e.Dest < 0 || e.Dest >= dest.Len() {
			return nil, fmt.Errorf("%w: edge %d (%d -> %d) outside %dx%d", ErrInvalidEdge, i, e.Base, e.Dest, base.Len(), dest.Len())
		}
	}

	return &Map{base: base, dest: dest, edges: append([]Edge(nil), edges...)}, nil
}

// NewMapFromIDs builds a Map from pairs of sparse identifiers.
func NewMapFromIDs(base, dest *Categories, pairs [][2]CategoryID) (*Map, error) {
	if base == nil || dest == nil {
		panic("model: nil categories")
	}

	edges := make([]Edge, 0, len(pairs))
	for _, p := range pairs {
		b := base.Flat(p[0])
		if b < 0 {
			return nil, &UnknownCategoryError{ID: p[0]}
		}
		d := dest.Flat(p[1])
		if d < 0 {
			return nil, &UnknownCategoryError{ID: p[1]}
		}
		edges = append(edges, Edge{Base: b, Dest: d})
	}
	return NewMap(base, dest, edges)
}

// Base returns the source categories.
func (m *Map) Base() *Categories { return m.base }

// Dest returns the destination categories.
func (m *Map) Dest() *Categories { return m.dest }

// Edges returns a copy of the edges.
func (m *Map) Edges() []Edge { return append([]Edge(nil), m.edges...) }

// Aggregate sums v along the edges into a new vector over Dest.
func (m *Map) Aggregate(v *Vector) (*Vector, error) {
	if !v.Categories().Same(m.base) {
		return nil, fmt.Errorf("%w: vector is not indexed by the map base", ErrIncompatibleCategories)
	}

	out := NewVector(m.dest)
	for _, e := range m.edges {
		out.data[e.Dest] += v.data[e.Base]
	}
	return out, nil
}

// AggregateMatrix sums a base x base matrix into a new dest x dest matrix.
func (m *Map) AggregateMatrix(mat *Matrix) (*Matrix, error) {
	if !mat.RowCategories().Same(m.base) || !mat.ColumnCategories().Same(m.base) {
		return nil, fmt.Errorf("%w: matrix is not indexed by the map base on both axes", ErrIncompatibleCategories)
	}

	// Rows first: dest x base.
	partial := NewMatrix(m.dest, m.base)
	for _, e := range m.edges {
		row := partial.Row(e.Dest)
		simd.Add(row, row, mat.Row(e.Base))
	}

	out := NewSquareMatrix(m.dest)
	for r := range m.dest.Len() {
		src := partial.Row(r)
		dst := out.Row(r)
		for _, e := range m.edges {
			dst[e.Dest] += src[e.Base]
		}
	}
	return out, nil
}

// Unmapped returns the base flat positions without any outgoing edge.
func (m *Map) Unmapped() *roaring.Bitmap {
	mapped := roaring.New()
	for _, e := range m.edges {
		mapped.Add(conv.MustIntToUint32(e.Base))
	}

	all := roaring.New()
	all.AddRange(0, uint64(m.base.Len()))
	all.AndNot(mapped)
	return all
}

// Covered returns the destination flat positions reached by at least one edge.
func (m *Map) Covered() *roaring.Bitmap {
	covered := roaring.New()
	for _, e := range m.edges {
		covered.Add(conv.MustIntToUint32(e.Dest))
	}
	return covered
}
