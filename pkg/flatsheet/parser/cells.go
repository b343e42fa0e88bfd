package parser

import (
	"strconv"
	"time"

	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
	"github.com/xuri/excelize/v2"
)

// LoadSheet reads a sheet into a typed cell grid together with its merge list
// and used range.
func LoadSheet(f *excelize.File, sheetName string) (*models.Sheet, error) {
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	formatted, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	styles := newStyleCache(f, sheetName)

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}
	grid := models.NewGrid(len(raw), width)

	for rowIdx, row := range raw {
		for colIdx, rawValue := range row {
			text := ""
			if rowIdx < len(formatted) && colIdx < len(formatted[rowIdx]) {
				text = formatted[rowIdx][colIdx]
			}
			if rawValue == "" && text == "" {
				continue
			}

			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				continue
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				cellType = excelize.CellTypeUnset
			}
			isDate := false
			if cellType == excelize.CellTypeUnset || cellType == excelize.CellTypeNumber {
				isDate = styles.isDate(cellName)
			}
			grid.Set(rowIdx, colIdx, readCell(cellType, rawValue, text, isDate, date1904))
		}
	}

	merges, err := ExtractMerges(f, sheetName)
	if err != nil {
		// Merge metadata is optional; a sheet without it is processed as unmerged.
		merges = nil
	}

	return &models.Sheet{
		Name:   sheetName,
		Grid:   grid,
		Merges: merges,
		Used:   DetectUsedRange(f, sheetName, grid, merges),
	}, nil
}

// readCell converts an excelize cell into a typed cell.
// Numbers formatted as dates become date cells; anything that is neither a
// number nor a date is kept as its display text.
func readCell(cellType excelize.CellType, raw, text string, isDate, date1904 bool) models.Cell {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return stringCell(raw, text)
		}
		if isDate {
			if t, err := excelize.ExcelDateToTime(v, date1904); err == nil {
				return models.Cell{Kind: models.CellDate, Time: t, Text: text}
			}
		}
		return models.Cell{Kind: models.CellNumber, Num: v, Text: text}
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return models.Cell{Kind: models.CellDate, Time: t, Text: text}
		}
		return stringCell(raw, text)
	default:
		return stringCell(raw, text)
	}
}

func stringCell(raw, text string) models.Cell {
	if text != "" {
		return models.StringCell(text)
	}
	return models.StringCell(raw)
}

// parseISODate parses the ISO 8601 form used by cells of type "d".
func parseISODate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
