package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
)

func TestResolveCoversEveryMember(t *testing.T) {
	grid := models.NewGrid(4, 4)
	grid.Set(0, 0, models.StringCell("Согласование"))
	grid.Set(1, 1, models.NumberCell(12345))
	merges := []models.MergeRange{
		{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2},
		{StartRow: 1, StartCol: 1, EndRow: 3, EndCol: 2},
	}

	mm := Resolve(grid, merges)

	for _, mr := range merges {
		anchor := grid.At(mr.StartRow, mr.StartCol)
		for r := mr.StartRow; r <= mr.EndRow; r++ {
			for c := mr.StartCol; c <= mr.EndCol; c++ {
				v, ok := mm.Lookup(r, c)
				assert.True(t, ok, "(%d,%d) should be merged", r, c)
				assert.Equal(t, anchor, v, "(%d,%d)", r, c)
			}
		}
	}
	assert.Equal(t, 3+6, mm.Len())
}

func TestResolveOutsideMergeIsAbsent(t *testing.T) {
	grid := models.NewGrid(2, 2)
	grid.Set(1, 1, models.StringCell("x"))
	mm := Resolve(grid, []models.MergeRange{{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 1}})

	_, ok := mm.Lookup(1, 1)
	assert.False(t, ok)
	_, ok = mm.Lookup(1, 0)
	assert.False(t, ok)
	v, fromMerge := mm.EffectiveMerged(grid, 1, 1)
	assert.False(t, fromMerge)
	assert.Equal(t, models.StringCell("x"), v)
}

func TestResolveEmptyAnchor(t *testing.T) {
	grid := models.NewGrid(1, 3)
	mm := Resolve(grid, []models.MergeRange{{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 1}})

	v, ok := mm.Lookup(0, 1)
	assert.True(t, ok, "an empty anchor still marks its members as merged")
	assert.Equal(t, models.CellString, v.Kind)
	assert.Equal(t, "", v.Str)
	_, ok = mm.Lookup(0, 2)
	assert.False(t, ok)
}

func TestResolveNoMerges(t *testing.T) {
	grid := models.NewGrid(1, 1)
	mm := Resolve(grid, nil)
	assert.Equal(t, 0, mm.Len())

	var nilMap *Map
	_, ok := nilMap.Lookup(0, 0)
	assert.False(t, ok)
}

func TestEffectivePrefersNonEmptyMergeValue(t *testing.T) {
	grid := models.NewGrid(1, 2)
	grid.Set(0, 0, models.StringCell("A"))
	mm := Resolve(grid, []models.MergeRange{{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 1}})

	v, fromMerge := mm.EffectiveMerged(grid, 0, 1)
	assert.True(t, fromMerge)
	assert.Equal(t, "A", v.String())

	// An empty merge value falls back to the raw cell.
	grid2 := models.NewGrid(1, 2)
	grid2.Set(0, 1, models.StringCell("stray"))
	mm2 := Resolve(grid2, []models.MergeRange{{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 1}})
	v, fromMerge = mm2.EffectiveMerged(grid2, 0, 1)
	assert.False(t, fromMerge)
	assert.Equal(t, "stray", v.String())
}

func TestAnchorAndContinues(t *testing.T) {
	grid := models.NewGrid(3, 3)
	grid.Set(0, 0, models.StringCell("A"))
	mm := Resolve(grid, []models.MergeRange{{StartRow: 0, StartCol: 0, EndRow: 2, EndCol: 1}})

	a, ok := mm.Anchor(2, 1)
	assert.True(t, ok)
	assert.Equal(t, models.Coord{Row: 0, Col: 0}, a)
	assert.False(t, mm.Continues(0, 0))
	assert.False(t, mm.Continues(2, 0))
	assert.True(t, mm.Continues(1, 1))
	assert.False(t, mm.Continues(0, 2))
}

func TestResolveDoesNotModifyGrid(t *testing.T) {
	grid := models.NewGrid(1, 3)
	grid.Set(0, 0, models.StringCell("A"))
	before := grid.Clone()

	Resolve(grid, []models.MergeRange{{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2}})

	assert.True(t, before.Equal(grid))
}
