// Package flatsheet flattens approval-workflow spreadsheets with a
// stage / role / field header into a delimited table.
package flatsheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/header"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/output"
)

// Format represents the output format.
type Format string

const (
	// FormatCSV writes delimited text.
	FormatCSV Format = "csv"
	// FormatJSON writes an array of objects keyed by column name.
	FormatJSON Format = "json"
)

// DefaultHeaderRows is the stage / role / field convention.
const DefaultHeaderRows = 3

// Options configures conversion behavior.
type Options struct {
	// SheetName selects the sheet to read. Empty selects the first sheet.
	SheetName string
	// HeaderRows is the number of header rows (1 to 3).
	HeaderRows int
	// StageKeywords marks stage labels. Empty selects header.DefaultStageKeywords.
	StageKeywords []string
	// Format selects the output format.
	Format Format
	// Delimiter separates CSV fields.
	Delimiter rune
	// CRLF ends CSV lines with \r\n.
	CRLF bool
	// Pretty indents JSON output.
	Pretty bool
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	csvOpts := output.DefaultCSVOptions()
	return Options{
		HeaderRows:    DefaultHeaderRows,
		StageKeywords: append([]string(nil), header.DefaultStageKeywords...),
		Format:        FormatCSV,
		Delimiter:     csvOpts.Delimiter,
		CRLF:          csvOpts.CRLF,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.HeaderRows < 1 || o.HeaderRows > 3 {
		return fmt.Errorf("header rows must be between 1 and 3, got %d", o.HeaderRows)
	}
	switch o.Format {
	case FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("invalid format: %s (must be csv or json)", o.Format)
	}
	switch o.Delimiter {
	case 0, '"', '\r', '\n':
		return fmt.Errorf("invalid delimiter %q", o.Delimiter)
	}
	return nil
}

// FieldRow returns the index of the header row holding field labels, which is
// also the first row whose merged cells are materialized.
func (o Options) FieldRow() int {
	return o.HeaderRows - 1
}

// DefaultOutputPath replaces the input extension with the format's extension.
func DefaultOutputPath(inputPath string, format Format) string {
	ext := "." + string(FormatCSV)
	if format == FormatJSON {
		ext = "." + string(FormatJSON)
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext
}
