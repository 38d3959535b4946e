package model

import (
	"fmt"

	"github.com/hupe1980/odcalc/internal/simd"
)

// Matrix is a dense row-major float32 array indexed by row and column
// Categories.
type Matrix struct {
	rowCats *Categories
	colCats *Categories
	cols    int
	data    []float32
}

// NewMatrix allocates a zeroed matrix.
func NewMatrix(rows, cols *Categories) *Matrix {
	if rows == nil || cols == nil {
		panic("model: nil categories")
	}
	return &Matrix{
		rowCats: rows,
		colCats: cols,
		cols:    cols.Len(),
		data:    make([]float32, rows.Len()*cols.Len()),
	}
}

// NewSquareMatrix allocates a zeroed matrix using cats for both axes.
func NewSquareMatrix(cats *Categories) *Matrix {
	return NewMatrix(cats, cats)
}

// NewMatrixFrom wraps row-major data without copying.
func NewMatrixFrom(rows, cols *Categories, data []float32) *Matrix {
	if rows == nil || cols == nil {
		panic("model: nil categories")
	}
	if len(data) != rows.Len()*cols.Len() {
		panic(fmt.Sprintf("model: matrix data length %d does not match %dx%d", len(data), rows.Len(), cols.Len()))
	}
	return &Matrix{rowCats: rows, colCats: cols, cols: cols.Len(), data: data}
}

// RowCategories returns the row axis categories.
func (m *Matrix) RowCategories() *Categories { return m.rowCats }

// ColumnCategories returns the column axis categories.
func (m *Matrix) ColumnCategories() *Categories { return m.colCats }

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rowCats.Len() }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Len returns the number of elements.
func (m *Matrix) Len() int { return len(m.data) }

// Data returns the live row-major backing buffer.
func (m *Matrix) Data() []float32 { return m.data }

// Row returns a live view of row r.
func (m *Matrix) Row(r int) []float32 {
	return m.data[r*m.cols : (r+1)*m.cols : (r+1)*m.cols]
}

// At returns the element at flat position (r, c).
func (m *Matrix) At(r, c int) float32 {
	if c < 0 || c >= m.cols {
		panic(&IndexOutOfRangeError{Index: c, Count: m.cols})
	}
	return m.data[r*m.cols+c]
}

// Set stores x at flat position (r, c).
func (m *Matrix) Set(r, c int, x float32) {
	if c < 0 || c >= m.cols {
		panic(&IndexOutOfRangeError{Index: c, Count: m.cols})
	}
	m.data[r*m.cols+c] = x
}

// Get returns the element for a pair of sparse identifiers.
func (m *Matrix) Get(row, col CategoryID) (float32, error) {
	r := m.rowCats.Flat(row)
	if r < 0 {
		return 0, &UnknownCategoryError{ID: row}
	}
	c := m.colCats.Flat(col)
	if c < 0 {
		return 0, &UnknownCategoryError{ID: col}
	}
	return m.data[r*m.cols+c], nil
}

// Fill sets every element to x.
func (m *Matrix) Fill(x float32) { simd.Set(m.data, x) }

// Sum returns the sum of all elements.
func (m *Matrix) Sum() float32 { return simd.Sum(m.data) }

// Clone returns a deep copy sharing the same Categories.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.rowCats, m.colCats)
	copy(out.data, m.data)
	return out
}
