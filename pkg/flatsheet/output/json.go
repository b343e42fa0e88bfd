package output

import (
	"encoding/json"

	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
)

// ToJSON renders the data rows as an array of objects keyed by column name.
// Duplicate column names collapse to the last column's value.
func ToJSON(t *models.Table, pretty bool) ([]byte, error) {
	records := t.Records()
	if pretty {
		return json.MarshalIndent(records, "", "  ")
	}
	return json.Marshal(records)
}

// ColumnsToJSON renders the header row as a JSON array.
func ColumnsToJSON(t *models.Table, pretty bool) ([]byte, error) {
	header := t.Header
	if header == nil {
		header = []string{}
	}
	if pretty {
		return json.MarshalIndent(header, "", "  ")
	}
	return json.Marshal(header)
}
