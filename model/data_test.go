package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	cats := MustNewCategories(1, 2, 3)
	v := NewVector(cats)

	assert.Equal(t, 3, v.Len())
	assert.Same(t, cats, v.Categories())

	v.Set(1, 2.5)
	assert.Equal(t, float32(2.5), v.At(1))

	got, err := v.Get(2)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), got)

	_, err = v.Get(9)
	var unknown *UnknownCategoryError
	assert.ErrorAs(t, err, &unknown)

	v.Fill(1)
	assert.Equal(t, float32(3), v.Sum())

	c := v.Clone()
	c.Set(0, 10)
	assert.Equal(t, float32(1), v.At(0))
	assert.Same(t, v.Categories(), c.Categories())
}

func TestVectorContracts(t *testing.T) {
	assert.Panics(t, func() { NewVector(nil) })
	assert.Panics(t, func() { NewVectorFrom(MustNewCategories(1), []float32{1, 2}) })
	assert.Panics(t, func() { NewVector(MustNewCategories(1)).At(1) })
}

func TestMatrix(t *testing.T) {
	rows := MustNewCategories(1, 2)
	cols := MustNewCategories(7, 8, 9)
	m := NewMatrixFrom(rows, cols, []float32{1, 2, 3, 4, 5, 6})

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, 6, m.Len())
	assert.Equal(t, []float32{4, 5, 6}, m.Row(1))
	assert.Equal(t, float32(6), m.At(1, 2))

	got, err := m.Get(2, 8)
	require.NoError(t, err)
	assert.Equal(t, float32(5), got)

	_, err = m.Get(3, 8)
	assert.Error(t, err)
	_, err = m.Get(2, 1)
	assert.Error(t, err)

	m.Set(0, 0, 10)
	assert.Equal(t, float32(30), m.Sum())

	c := m.Clone()
	c.Fill(0)
	assert.Equal(t, float32(30), m.Sum())
	assert.Equal(t, float32(0), c.Sum())
}

func TestMatrixContracts(t *testing.T) {
	cats := MustNewCategories(1, 2)
	assert.Panics(t, func() { NewMatrix(nil, cats) })
	assert.Panics(t, func() { NewMatrixFrom(cats, cats, []float32{1}) })

	m := NewSquareMatrix(cats)
	assert.Panics(t, func() { m.At(0, 2) })
	assert.Panics(t, func() { m.Set(2, 0, 1) })
}

func TestMatrixRowIsView(t *testing.T) {
	m := NewSquareMatrix(MustNewCategories(1, 2))
	row := m.Row(1)
	row[0] = 3
	assert.Equal(t, float32(3), m.At(1, 0))
	assert.Equal(t, 2, cap(row), "row view must not reach into the next row")
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "horizontal", Horizontal.String())
	assert.Equal(t, "vertical", Vertical.String())
	assert.Equal(t, "unassigned", Unassigned.String())
	assert.Equal(t, "unknown", Direction(9).String())
}
