package header

import (
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/merge"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
)

// labelCell is the effective header value of one column. continued marks a
// merge member right of its anchor column, fromAbove a member below its anchor row.
type labelCell struct {
	col       int
	value     string
	fromMerge bool
	continued bool
	fromAbove bool
}

// effectiveRow resolves a header row over [firstCol, lastCol]: the merge value
// when the address is merged and non-empty, the raw cell's display value otherwise.
func effectiveRow(grid *models.Grid, mm *merge.Map, row, firstCol, lastCol int) []labelCell {
	if lastCol < firstCol {
		return nil
	}
	cells := make([]labelCell, 0, lastCol-firstCol+1)
	for col := firstCol; col <= lastCol; col++ {
		v, fromMerge := mm.EffectiveMerged(grid, row, col)
		c := labelCell{col: col, value: v.String(), fromMerge: fromMerge}
		if a, ok := mm.Anchor(row, col); ok && fromMerge {
			c.continued = mm.Continues(row, col)
			c.fromAbove = a.Row < row
		}
		cells = append(cells, c)
	}
	return cells
}

// detectPositions returns, in column order, every column whose value is a
// label. Columns continuing a merge belong to the block's anchor and open no
// position of their own.
func detectPositions(cells []labelCell, isLabel Predicate) []models.StagePosition {
	var positions []models.StagePosition
	for _, c := range cells {
		if !c.continued && !c.fromAbove && isLabel(c.value) {
			positions = append(positions, models.StagePosition{Col: c.col, Label: c.value})
		}
	}
	return positions
}

// buildRanges partitions [positions[0].Col, lastCol] into one range per position.
func buildRanges(positions []models.StagePosition, lastCol int) []models.StageRange {
	ranges := make([]models.StageRange, 0, len(positions))
	for i, p := range positions {
		end := lastCol
		if i+1 < len(positions) {
			end = positions[i+1].Col - 1
		}
		ranges = append(ranges, models.StageRange{StartCol: p.Col, EndCol: end, Label: p.Label})
	}
	return ranges
}

// scanState is the propagation state of a left-to-right header scan.
// active is the label being forward-filled, next indexes the pending boundary.
type scanState struct {
	positions []models.StagePosition
	isLabel   Predicate
	active    string
	hasActive bool
	next      int
}

func newScan(positions []models.StagePosition, isLabel Predicate) *scanState {
	return &scanState{positions: positions, isLabel: isLabel}
}

// boundary returns the next pending position, if any.
func (s *scanState) boundary() (models.StagePosition, bool) {
	if s.next < len(s.positions) {
		return s.positions[s.next], true
	}
	return models.StagePosition{}, false
}

// step consumes one column and returns the value the column ends up with.
//
//   - at a boundary column the boundary label becomes active
//   - a column inside a merge anchored in an earlier row ends the active label
//   - a non-empty own value is kept; a merged label also becomes active
//   - an empty column receives the active label, unless it has reached the
//     next boundary, which clears the active label
//
// A column carrying its own value is never overwritten.
func (s *scanState) step(c labelCell) string {
	if b, ok := s.boundary(); ok && c.col == b.Col {
		s.active, s.hasActive = b.Label, true
		s.next++
		return b.Label
	}

	if c.fromAbove {
		s.active, s.hasActive = "", false
		return c.value
	}

	if c.value != "" {
		if c.fromMerge && s.isLabel(c.value) {
			s.active, s.hasActive = c.value, true
		}
		return c.value
	}

	if !s.hasActive {
		return ""
	}
	if b, ok := s.boundary(); ok && c.col >= b.Col {
		s.active, s.hasActive = "", false
		return ""
	}
	return s.active
}

// propagate runs a scan over cells and returns the resulting value per cell.
func propagate(cells []labelCell, positions []models.StagePosition, isLabel Predicate) []string {
	s := newScan(positions, isLabel)
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = s.step(c)
	}
	return out
}
