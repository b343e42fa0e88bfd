// Package rows fills merged data cells with their anchor's value.
package rows

import (
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/merge"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
)

// Stats counts what a materialization pass did.
type Stats struct {
	Filled int
}

// Materialize returns a copy of grid in which every empty merge member within
// rows [fromRow, used.MaxRow] and columns [used.MinCol, used.MaxCol] holds its
// anchor's value. Non-empty cells are never overwritten. The input grid is
// not modified, and materializing an already materialized grid changes nothing.
func Materialize(grid *models.Grid, mm *merge.Map, used models.UsedRange, fromRow int) (*models.Grid, Stats) {
	out := grid.Clone()
	var stats Stats

	if fromRow < used.MinRow {
		fromRow = used.MinRow
	}
	for row := fromRow; row <= used.MaxRow; row++ {
		for col := used.MinCol; col <= used.MaxCol; col++ {
			anchor, ok := mm.Lookup(row, col)
			if !ok || !grid.At(row, col).IsEmpty() {
				continue
			}
			out.Set(row, col, fill(anchor))
			stats.Filled++
		}
	}

	return out, stats
}

// fill retags an anchor value for a filled cell. Numbers and dates keep their
// type; anything else becomes a string.
func fill(anchor models.Cell) models.Cell {
	switch anchor.Kind {
	case models.CellNumber:
		return models.Cell{Kind: models.CellNumber, Num: anchor.Num, Text: anchor.Text}
	case models.CellDate:
		return models.Cell{Kind: models.CellDate, Time: anchor.Time, Text: anchor.Text}
	default:
		return models.StringCell(anchor.String())
	}
}
