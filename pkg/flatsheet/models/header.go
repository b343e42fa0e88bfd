package models

// StagePosition is a header column whose resolved value is a stage label.
// The same type marks role positions in the role row.
type StagePosition struct {
	Col   int    `json:"col"`
	Label string `json:"label"`
}

// StageRange is the contiguous column span owned by one stage, inclusive.
type StageRange struct {
	StartCol int    `json:"start_col"`
	EndCol   int    `json:"end_col"`
	Label    string `json:"label"`
}

// Width returns the number of columns in the range.
func (r StageRange) Width() int {
	return r.EndCol - r.StartCol + 1
}

// FlatColumn is the identity of one output column.
type FlatColumn struct {
	Col   int    `json:"col"`
	Stage string `json:"stage,omitempty"`
	Role  string `json:"role,omitempty"`
	Field string `json:"field,omitempty"`
}

// Name concatenates the non-empty components without a separator.
func (f FlatColumn) Name() string {
	return f.Stage + f.Role + f.Field
}
