package models

import "fmt"

// Coord is a zero-based (row, column) sheet address. A1 is {0, 0}.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// MergeRange is a merged block with inclusive bounds.
type MergeRange struct {
	StartRow int `json:"start_row"`
	StartCol int `json:"start_col"`
	EndRow   int `json:"end_row"`
	EndCol   int `json:"end_col"`
}

// Anchor returns the top-left address, the only cell of the range that may hold a value.
func (m MergeRange) Anchor() Coord {
	return Coord{Row: m.StartRow, Col: m.StartCol}
}

// Overlaps reports whether two ranges share at least one address.
func (m MergeRange) Overlaps(o MergeRange) bool {
	return m.StartRow <= o.EndRow && o.StartRow <= m.EndRow &&
		m.StartCol <= o.EndCol && o.StartCol <= m.EndCol
}

// UsedRange holds the populated bounds of a sheet, inclusive.
type UsedRange struct {
	MinRow int `json:"min_row"`
	MinCol int `json:"min_col"`
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`
}

// Empty reports whether the range covers no cells.
func (u UsedRange) Empty() bool {
	return u.MaxRow < u.MinRow || u.MaxCol < u.MinCol
}

// Sheet is one worksheet: its raw cell grid, merge list and used range.
type Sheet struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Grid holds the raw cells. Members of a merge other than the anchor are empty.
	Grid *Grid `json:"-"`
	// Merges lists the merged blocks. Ranges never overlap.
	Merges []MergeRange `json:"merges,omitempty"`
	// Used is the populated range of the sheet.
	Used UsedRange `json:"used"`
}
