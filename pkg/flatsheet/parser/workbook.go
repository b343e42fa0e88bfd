package parser

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets indicates a workbook without worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// LoadWorkbook reads one sheet of an open workbook. An empty sheetName selects
// the first sheet; the returned workbook lists every sheet name but only holds
// the selected sheet.
func LoadWorkbook(f *excelize.File, path, sheetName string) (*models.Workbook, error) {
	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoSheets)
	}

	if sheetName == "" {
		sheetName = sheetList[0]
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%q: %w", sheetName, ErrSheetNotFound)
	}

	sheet, err := LoadSheet(f, sheetName)
	if err != nil {
		return nil, err
	}

	return &models.Workbook{
		BookName:   filepath.Base(path),
		SheetNames: sheetList,
		Sheets:     []models.Sheet{*sheet},
	}, nil
}
