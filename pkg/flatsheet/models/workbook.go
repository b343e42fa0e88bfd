package models

// Workbook describes a workbook and holds the sheets that were loaded from it.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists sheet names in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheets holds only the loaded sheets. A conversion loads a single sheet, so
	// Sheets usually has one entry while SheetNames lists them all.
	Sheets []Sheet `json:"sheets"`
}

// First returns the first sheet, or nil when the workbook has none.
func (w *Workbook) First() *Sheet {
	if len(w.Sheets) == 0 {
		return nil
	}
	return &w.Sheets[0]
}
