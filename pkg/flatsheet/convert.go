package flatsheet

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/header"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/merge"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/output"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/parser"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/rows"
	"github.com/xuri/excelize/v2"
)

// Result is the outcome of flattening one sheet.
type Result struct {
	// Workbook lists the workbook's sheet names and holds the processed sheet.
	Workbook *models.Workbook
	// Header is the flattened header with its stage positions and ranges.
	Header *header.Result
	// Table is the flattened header row followed by the materialized data rows.
	Table *models.Table
	// Filled counts merged data cells filled from their anchor.
	Filled int
}

// Sheet returns the processed sheet.
func (r *Result) Sheet() *models.Sheet {
	return r.Workbook.First()
}

// Flatten reads a workbook and builds its flattened table. Nothing is written.
func Flatten(inputPath string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, NewConversionError(inputPath, StepLoad, fmt.Errorf("%w: %s", ErrFileNotFound, inputPath))
	}

	f, err := excelize.OpenFile(inputPath)
	if err != nil {
		return nil, NewConversionError(inputPath, StepLoad, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	wb, err := parser.LoadWorkbook(f, inputPath, opts.SheetName)
	if err != nil {
		return nil, NewConversionError(inputPath, StepLoad, err)
	}

	res := FlattenSheet(wb.First(), opts)
	res.Workbook = wb
	return res, nil
}

// FlattenSheet runs merge resolution, header flattening and row
// materialization over a loaded sheet. The sheet is only read.
func FlattenSheet(sheet *models.Sheet, opts Options) *Result {
	logger := log.WithField("sheet", sheet.Name)

	mm := merge.Resolve(sheet.Grid, sheet.Merges)
	logger.Debugf("resolved %d merges covering %d cells", len(sheet.Merges), mm.Len())

	fl := &header.Flattener{
		Layout:  header.LayoutForRows(opts.HeaderRows),
		IsStage: header.StagePredicate(opts.StageKeywords),
	}
	hdr := fl.Flatten(sheet.Grid, mm, sheet.Used)
	if len(hdr.Ranges) == 0 {
		logger.Debug("no stage labels found, role propagation skipped")
	} else {
		logger.Debugf("found %d stage ranges", len(hdr.Ranges))
		for _, rg := range hdr.Ranges {
			logger.Debugf("stage %q spans %d columns", rg.Label, rg.Width())
		}
	}

	grid, stats := rows.Materialize(sheet.Grid, mm, sheet.Used, opts.FieldRow())
	logger.Debugf("filled %d merged cells", stats.Filled)

	table := &models.Table{Header: hdr.Names()}
	for r := opts.HeaderRows; r <= sheet.Used.MaxRow; r++ {
		line := make([]models.Cell, 0, len(hdr.Columns))
		for _, c := range hdr.Columns {
			line = append(line, grid.At(r, c.Col))
		}
		table.Rows = append(table.Rows, line)
	}

	return &Result{
		Workbook: &models.Workbook{SheetNames: []string{sheet.Name}, Sheets: []models.Sheet{*sheet}},
		Header:   hdr,
		Table:    table,
		Filled:   stats.Filled,
	}
}

// Render serializes a table in the format selected by opts.
func Render(t *models.Table, opts Options) ([]byte, error) {
	if opts.Format == FormatJSON {
		return output.ToJSON(t, opts.Pretty)
	}
	var buf bytes.Buffer
	err := output.WriteCSV(&buf, t, output.CSVOptions{Delimiter: opts.Delimiter, CRLF: opts.CRLF})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Converter runs conversions. Conversions targeting the same output path are
// serialized; a zero Converter is ready to use.
type Converter struct {
	locks pathLocks
}

// Convert flattens inputPath and writes the result to outputPath, backing up
// an existing output first. An empty outputPath is derived from the input.
func (c *Converter) Convert(inputPath, outputPath string, opts Options) (*Result, error) {
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath, opts.Format)
	}

	key, err := filepath.Abs(outputPath)
	if err != nil {
		key = filepath.Clean(outputPath)
	}
	unlock := c.locks.lock(key)
	defer unlock()

	res, err := Flatten(inputPath, opts)
	if err != nil {
		return nil, err
	}

	data, err := Render(res.Table, opts)
	if err != nil {
		return nil, NewConversionError(inputPath, StepRender, err)
	}
	if err := output.WriteFile(outputPath, data); err != nil {
		return nil, NewConversionError(outputPath, StepWrite, err)
	}

	log.WithFields(log.Fields{
		"input":   inputPath,
		"output":  outputPath,
		"columns": len(res.Table.Header),
		"rows":    len(res.Table.Rows),
	}).Info("conversion complete")

	return res, nil
}

var defaultConverter Converter

// Convert flattens inputPath into outputPath using a process-wide Converter.
func Convert(inputPath, outputPath string, opts Options) (*Result, error) {
	return defaultConverter.Convert(inputPath, outputPath, opts)
}
