package model

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompatibleCategories is returned when an operand is not indexed by
	// the Categories instance an operation expects.
	ErrIncompatibleCategories = errors.New("model: incompatible categories")

	// ErrDuplicateCategory is returned when a category identifier appears
	// more than once.
	ErrDuplicateCategory = errors.New("model: duplicate category")

	// ErrIndexOutOfRange is returned for flat positions outside [0, Count).
	ErrIndexOutOfRange = errors.New("model: flat index out of range")

	// ErrInvalidEdge is returned when a map edge references a flat position
	// outside its Categories.
	ErrInvalidEdge = errors.New("model: invalid map edge")
)

// DuplicateCategoryError reports an identifier given twice.
type DuplicateCategoryError struct {
	ID CategoryID
}

func (e *DuplicateCategoryError) Error() string {
	return fmt.Sprintf("model: duplicate category %d", e.ID)
}

func (e *DuplicateCategoryError) Unwrap() error {
	return ErrDuplicateCategory
}

// IndexOutOfRangeError reports a flat position outside [0, Count).
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("model: flat index %d out of range [0, %d)", e.Index, e.Count)
}

func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// UnknownCategoryError reports a sparse identifier that is not part of a
// Categories set.
type UnknownCategoryError struct {
	ID CategoryID
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("model: unknown category %d", e.ID)
}
