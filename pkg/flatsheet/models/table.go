package models

// Table is the flattened output: one header row of column names followed by data rows.
type Table struct {
	Header []string `json:"header"`
	Rows   [][]Cell `json:"-"`
}

// BlankRow reports whether every cell of a row displays as "". Blank rows are
// left out of every rendering of a table.
func BlankRow(row []Cell) bool {
	for _, c := range row {
		if c.String() != "" {
			return false
		}
	}
	return true
}

// Records renders each non-blank data row as a map keyed by column name.
// Column names are not guaranteed unique; on duplicates the last column wins.
func (t *Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if BlankRow(row) {
			continue
		}
		rec := make(map[string]string, len(t.Header))
		for i, name := range t.Header {
			var v string
			if i < len(row) {
				v = row[i].String()
			}
			rec[name] = v
		}
		out = append(out, rec)
	}
	return out
}

// Strings renders the non-blank data rows as display strings.
func (t *Table) Strings() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if BlankRow(row) {
			continue
		}
		line := make([]string, len(row))
		for j, c := range row {
			line[j] = c.String()
		}
		out = append(out, line)
	}
	return out
}
