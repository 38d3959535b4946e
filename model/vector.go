package model

import (
	"fmt"

	"github.com/hupe1980/odcalc/internal/simd"
)

// Vector is a dense float32 array indexed by one Categories.
type Vector struct {
	cats *Categories
	data []float32
}

// NewVector allocates a zeroed vector over cats.
func NewVector(cats *Categories) *Vector {
	if cats == nil {
		panic("model: nil categories")
	}
	return &Vector{cats: cats, data: make([]float32, cats.Len())}
}

// NewVectorFrom wraps data without copying. len(data) must equal cats.Len().
func NewVectorFrom(cats *Categories, data []float32) *Vector {
	if cats == nil {
		panic("model: nil categories")
	}
	if len(data) != cats.Len() {
		panic(fmt.Sprintf("model: vector data length %d does not match %d categories", len(data), cats.Len()))
	}
	return &Vector{cats: cats, data: data}
}

// Categories returns the categories the vector is indexed by.
func (v *Vector) Categories() *Categories { return v.cats }

// Len returns the number of elements.
func (v *Vector) Len() int { return len(v.data) }

// Data returns the live backing buffer.
func (v *Vector) Data() []float32 { return v.data }

// At returns the element at flat position i.
func (v *Vector) At(i int) float32 { return v.data[i] }

// Set stores x at flat position i.
func (v *Vector) Set(i int, x float32) { v.data[i] = x }

// Get returns the element for a sparse identifier.
func (v *Vector) Get(id CategoryID) (float32, error) {
	i := v.cats.Flat(id)
	if i < 0 {
		return 0, &UnknownCategoryError{ID: id}
	}
	return v.data[i], nil
}

// Fill sets every element to x.
func (v *Vector) Fill(x float32) { simd.Set(v.data, x) }

// Sum returns the sum of all elements.
func (v *Vector) Sum() float32 { return simd.Sum(v.data) }

// Clone returns a deep copy sharing the same Categories.
func (v *Vector) Clone() *Vector {
	out := NewVector(v.cats)
	copy(out.data, v.data)
	return out
}
