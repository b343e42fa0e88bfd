package flatsheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/output"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoSheets indicates the workbook has no sheets.
var ErrNoSheets = parser.ErrNoSheets

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrBackupFailed indicates the existing output could not be backed up; the
// output was not written.
var ErrBackupFailed = output.ErrBackupFailed

// Conversion steps named in ConversionError.
const (
	StepLoad   = "load"
	StepRender = "render"
	StepWrite  = "write"
)

// ConversionError represents an error during conversion.
type ConversionError struct {
	Path string
	Step string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion error for %q (%s): %v", e.Path, e.Step, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new ConversionError.
func NewConversionError(path, step string, err error) *ConversionError {
	return &ConversionError{
		Path: path,
		Step: step,
		Err:  err,
	}
}
