// Package merge resolves merged cell blocks to the value their anchor holds.
package merge

import (
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
)

type entry struct {
	value  models.Cell
	anchor models.Coord
}

// Map maps every address inside a merge range to its anchor's value.
// Addresses outside any merge are absent.
type Map struct {
	entries map[models.Coord]entry
}

// Resolve builds the merge map for a grid. An empty anchor yields an
// empty-string entry, which is distinct from "not merged". The grid is not modified.
func Resolve(grid *models.Grid, merges []models.MergeRange) *Map {
	m := &Map{entries: make(map[models.Coord]entry, mergedCellCount(merges))}

	for _, mr := range merges {
		value := grid.At(mr.StartRow, mr.StartCol)
		if value.Kind == models.CellEmpty {
			value = models.StringCell("")
		}
		e := entry{value: value, anchor: mr.Anchor()}
		for r := mr.StartRow; r <= mr.EndRow; r++ {
			for c := mr.StartCol; c <= mr.EndCol; c++ {
				m.entries[models.Coord{Row: r, Col: c}] = e
			}
		}
	}

	return m
}

func mergedCellCount(merges []models.MergeRange) int {
	n := 0
	for _, mr := range merges {
		n += (mr.EndRow - mr.StartRow + 1) * (mr.EndCol - mr.StartCol + 1)
	}
	return n
}

// Lookup returns the anchor value for a merged address.
func (m *Map) Lookup(row, col int) (models.Cell, bool) {
	if m == nil {
		return models.Cell{}, false
	}
	e, ok := m.entries[models.Coord{Row: row, Col: col}]
	return e.value, ok
}

// Anchor returns the anchor address of the merge containing (row, col).
func (m *Map) Anchor(row, col int) (models.Coord, bool) {
	if m == nil {
		return models.Coord{}, false
	}
	e, ok := m.entries[models.Coord{Row: row, Col: col}]
	return e.anchor, ok
}

// Continues reports whether (row, col) is a merge member to the right of its
// anchor column, i.e. it continues a block started in an earlier column.
func (m *Map) Continues(row, col int) bool {
	a, ok := m.Anchor(row, col)
	return ok && a.Col < col
}

// Len returns the number of merged addresses.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// EffectiveMerged returns the value a spreadsheet UI displays at an address:
// the merge value when the address is merged and the value is non-empty, the
// raw cell otherwise. fromMerge reports which one was used.
func (m *Map) EffectiveMerged(grid *models.Grid, row, col int) (v models.Cell, fromMerge bool) {
	if mv, ok := m.Lookup(row, col); ok && !mv.IsEmpty() {
		return mv, true
	}
	return grid.At(row, col), false
}
