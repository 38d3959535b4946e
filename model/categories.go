package model

import (
	"fmt"
	"slices"
	"sort"
	"sync/atomic"
)

// CategoryID is a sparse category identifier such as a zone number.
type CategoryID int

// handleSeq hands out process-unique handles for Categories instances.
var handleSeq atomic.Uint64

// Categories is an immutable, sorted set of sparse category identifiers.
//
// Compatibility between data structures is decided by instance identity
// (see Same), never by comparing identifiers.
type Categories struct {
	ids    []CategoryID
	handle uint64
}

// NewCategories creates a Categories from ids in any order. Flat positions
// follow ascending identifier order.
func NewCategories(ids ...CategoryID) (*Categories, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, &DuplicateCategoryError{ID: sorted[i]}
		}
	}

	return &Categories{ids: sorted, handle: handleSeq.Add(1)}, nil
}

// MustNewCategories is like NewCategories but panics on error.
func MustNewCategories(ids ...CategoryID) *Categories {
	c, err := NewCategories(ids...)
	if err != nil {
		panic(err)
	}
	return c
}

// SequentialCategories creates the identifiers first, first+1, ..., first+n-1.
func SequentialCategories(first CategoryID, n int) *Categories {
	if n < 0 {
		panic(fmt.Sprintf("model: negative category count %d", n))
	}

	ids := make([]CategoryID, n)
	for i := range ids {
		ids[i] = first + CategoryID(i)
	}

	return &Categories{ids: ids, handle: handleSeq.Add(1)}
}

// Len returns the number of categories.
func (c *Categories) Len() int {
	return len(c.ids)
}

// Flat returns the dense position of id, or -1 if id is not present.
func (c *Categories) Flat(id CategoryID) int {
	i := sort.Search(len(c.ids), func(i int) bool { return c.ids[i] >= id })
	if i < len(c.ids) && c.ids[i] == id {
		return i
	}
	return -1
}

// Contains reports whether id is part of the set.
func (c *Categories) Contains(id CategoryID) bool {
	return c.Flat(id) >= 0
}

// Sparse returns the identifier stored at flat position i.
func (c *Categories) Sparse(i int) (CategoryID, error) {
	if i < 0 || i >= len(c.ids) {
		return 0, &IndexOutOfRangeError{Index: i, Count: len(c.ids)}
	}
	return c.ids[i], nil
}

// IDs returns a copy of the identifiers in flat order.
func (c *Categories) IDs() []CategoryID {
	return slices.Clone(c.ids)
}

// Handle returns the process-unique handle of this instance.
func (c *Categories) Handle() uint64 {
	return c.handle
}

// Same reports whether c and other are the same instance.
func (c *Categories) Same(other *Categories) bool {
	return c == other
}

// String returns a short description of the set.
func (c *Categories) String() string {
	if len(c.ids) == 0 {
		return fmt.Sprintf("Categories#%d[]", c.handle)
	}
	return fmt.Sprintf("Categories#%d[%d..%d, n=%d]", c.handle, c.ids[0], c.ids[len(c.ids)-1], len(c.ids))
}
