package parser

import (
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
	"github.com/xuri/excelize/v2"
)

// DetectUsedRange returns the populated bounds of a sheet: the union of the
// sheet's dimension reference, the bounding box of non-empty cells and all merges.
// A missing or malformed dimension is ignored.
func DetectUsedRange(f *excelize.File, sheetName string, grid *models.Grid, merges []models.MergeRange) models.UsedRange {
	used := findDataBounds(grid)

	if dim, err := f.GetSheetDimension(sheetName); err == nil && dim != "" {
		if r, err := ParseRangeRef(dim); err == nil {
			used = extend(used, r)
		}
	}
	for _, m := range merges {
		used = extend(used, m)
	}

	return used
}

// findDataBounds finds the bounding box of non-empty cells.
// An empty grid yields an empty range.
func findDataBounds(grid *models.Grid) models.UsedRange {
	used := models.UsedRange{MinRow: 0, MinCol: 0, MaxRow: -1, MaxCol: -1}
	found := false

	for rowIdx := 0; rowIdx < grid.Rows(); rowIdx++ {
		for colIdx := 0; colIdx < grid.Cols(); colIdx++ {
			if grid.At(rowIdx, colIdx).IsEmpty() {
				continue
			}
			if !found {
				used = models.UsedRange{MinRow: rowIdx, MinCol: colIdx, MaxRow: rowIdx, MaxCol: colIdx}
				found = true
				continue
			}
			used = extend(used, models.MergeRange{StartRow: rowIdx, StartCol: colIdx, EndRow: rowIdx, EndCol: colIdx})
		}
	}

	return used
}

func extend(used models.UsedRange, r models.MergeRange) models.UsedRange {
	if used.Empty() {
		return models.UsedRange{MinRow: r.StartRow, MinCol: r.StartCol, MaxRow: r.EndRow, MaxCol: r.EndCol}
	}
	if r.StartRow < used.MinRow {
		used.MinRow = r.StartRow
	}
	if r.StartCol < used.MinCol {
		used.MinCol = r.StartCol
	}
	if r.EndRow > used.MaxRow {
		used.MaxRow = r.EndRow
	}
	if r.EndCol > used.MaxCol {
		used.MaxCol = r.EndCol
	}
	return used
}
