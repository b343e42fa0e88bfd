// Package output serializes flattened tables.
package output

import (
	"encoding/csv"
	"io"
	"runtime"
	"unicode/utf8"

	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
)

// DefaultDelimiter is the field separator of the delimited output.
const DefaultDelimiter = ';'

// CSVOptions configures delimited output.
type CSVOptions struct {
	// Delimiter separates fields. Zero selects DefaultDelimiter.
	Delimiter rune
	// CRLF ends lines with \r\n instead of \n.
	CRLF bool
}

// DefaultCSVOptions uses ';' and the platform's line ending.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: DefaultDelimiter, CRLF: runtime.GOOS == "windows"}
}

// WriteCSV renders the header row and the data rows. Fields containing the
// delimiter, a quote or a line break are quoted with embedded quotes doubled,
// and so are fields starting with a space or tab so the padding survives a
// round trip. Blank rows are skipped (see models.BlankRow).
func WriteCSV(w io.Writer, t *models.Table, opts CSVOptions) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter
	if cw.Comma == 0 || !validDelimiter(cw.Comma) {
		cw.Comma = DefaultDelimiter
	}
	cw.UseCRLF = opts.CRLF

	if !blankHeader(t.Header) {
		if err := cw.Write(t.Header); err != nil {
			return err
		}
	}
	for _, row := range t.Strings() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func blankHeader(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}

func validDelimiter(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
