package model

// Direction is the orientation of a vector when combined with a matrix.
type Direction uint8

const (
	// Unassigned vectors cannot be broadcast against matrices.
	Unassigned Direction = iota
	// Horizontal vectors are indexed by column and reused for every row.
	Horizontal
	// Vertical vectors are indexed by row and apply one element per row.
	Vertical
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case Unassigned:
		return "unassigned"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}
