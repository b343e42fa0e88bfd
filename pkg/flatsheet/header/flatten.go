// Package header reconstructs flat column names from a three-row
// stage / role / field header.
package header

import (
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/merge"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
)

// Layout locates the header rows. A negative row disables that component.
type Layout struct {
	StageRow int
	RoleRow  int
	FieldRow int
}

// DefaultLayout is the three-row convention: stage, role, field.
func DefaultLayout() Layout {
	return Layout{StageRow: 0, RoleRow: 1, FieldRow: 2}
}

// LayoutForRows returns the layout of an n-row header: the last row holds
// fields, the first holds stages when n >= 2, the second holds roles when n >= 3.
func LayoutForRows(n int) Layout {
	switch {
	case n >= 3:
		return Layout{StageRow: 0, RoleRow: 1, FieldRow: n - 1}
	case n == 2:
		return Layout{StageRow: 0, RoleRow: -1, FieldRow: 1}
	default:
		return Layout{StageRow: -1, RoleRow: -1, FieldRow: 0}
	}
}

// Result is the flattened header of a sheet.
type Result struct {
	// Stages lists the stage positions found in the stage row.
	Stages []models.StagePosition
	// Ranges partitions the columns from the first stage to the last used column.
	Ranges []models.StageRange
	// Columns holds one entry per column of the used range.
	Columns []models.FlatColumn
}

// Names returns the flat name of every column. Names may repeat.
func (r *Result) Names() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name()
	}
	return names
}

// Flattener builds flat column names.
type Flattener struct {
	Layout  Layout
	IsStage Predicate
}

// NewFlattener returns a flattener for the three-row layout and the given
// stage keywords (nil selects DefaultStageKeywords).
func NewFlattener(keywords []string) *Flattener {
	return &Flattener{Layout: DefaultLayout(), IsStage: StagePredicate(keywords)}
}

// Flatten computes stage, role and field labels for every column in
// [used.MinCol, used.MaxCol]. The grid is only read.
func (fl *Flattener) Flatten(grid *models.Grid, mm *merge.Map, used models.UsedRange) *Result {
	res := &Result{}
	if used.MaxCol < used.MinCol {
		return res
	}
	first, last := used.MinCol, used.MaxCol
	width := last - first + 1

	isStage := fl.IsStage
	if isStage == nil {
		isStage = IsStage
	}

	stages := make([]string, width)
	if fl.Layout.StageRow >= 0 {
		cells := effectiveRow(grid, mm, fl.Layout.StageRow, first, last)
		res.Stages = detectPositions(cells, isStage)
		stages = propagate(cells, res.Stages, isStage)
		res.Ranges = buildRanges(res.Stages, last)
	}

	roles := make([]string, width)
	if fl.Layout.RoleRow >= 0 {
		cells := effectiveRow(grid, mm, fl.Layout.RoleRow, first, last)
		for i, c := range cells {
			roles[i] = c.value
		}
		// Roles are only propagated inside a stage; each stage scans independently.
		for _, r := range res.Ranges {
			scoped := cells[r.StartCol-first : r.EndCol-first+1]
			filled := propagate(scoped, detectPositions(scoped, IsRole), IsRole)
			copy(roles[r.StartCol-first:], filled)
		}
		dropFromAbove(roles, cells)
	}

	fields := make([]string, width)
	if fl.Layout.FieldRow >= 0 {
		cells := effectiveRow(grid, mm, fl.Layout.FieldRow, first, last)
		for i, c := range cells {
			fields[i] = c.value
		}
		dropFromAbove(fields, cells)
	}

	res.Columns = make([]models.FlatColumn, width)
	for i := range res.Columns {
		res.Columns[i] = models.FlatColumn{
			Col:   first + i,
			Stage: stages[i],
			Role:  roles[i],
			Field: fields[i],
		}
	}

	return res
}

// dropFromAbove blanks labels inherited from a vertical merge anchored in an
// earlier header row, so a label spanning several header rows is named once.
func dropFromAbove(labels []string, cells []labelCell) {
	for i, c := range cells {
		if c.fromAbove {
			labels[i] = ""
		}
	}
}

// Flatten is a convenience wrapper using the three-row layout and the default lexicon.
func Flatten(grid *models.Grid, mm *merge.Map, used models.UsedRange) *Result {
	return NewFlattener(nil).Flatten(grid, mm, used)
}
