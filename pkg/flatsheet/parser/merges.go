package parser

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
	"github.com/xuri/excelize/v2"
)

// ExtractMerges returns the merge ranges of a sheet as zero-based inclusive bounds.
// Malformed references and ranges overlapping an earlier range are skipped.
func ExtractMerges(f *excelize.File, sheetName string) ([]models.MergeRange, error) {
	mergeCells, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.MergeRange
	for _, mc := range mergeCells {
		ref := mc.GetStartAxis() + ":" + mc.GetEndAxis()
		mr, err := ParseRangeRef(ref)
		if err != nil {
			log.WithField("sheet", sheetName).Warnf("skipping merge %q: %v", ref, err)
			continue
		}
		if prior, ok := overlapping(result, mr); ok {
			log.WithField("sheet", sheetName).Warnf("skipping merge %q: overlaps %v", ref, prior)
			continue
		}
		result = append(result, mr)
	}

	return result, nil
}

func overlapping(ranges []models.MergeRange, mr models.MergeRange) (models.MergeRange, bool) {
	for _, r := range ranges {
		if r.Overlaps(mr) {
			return r, true
		}
	}
	return models.MergeRange{}, false
}

// ParseRangeRef parses a range string like $A$1:$D$10 (or a single cell, A1)
// to zero-based inclusive bounds. Corners given in reverse order are normalized.
func ParseRangeRef(ref string) (models.MergeRange, error) {
	// Remove sheet prefix and $ signs
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.MergeRange{}, fmt.Errorf("invalid range reference %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.MergeRange{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.MergeRange{}, err
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return models.MergeRange{
		StartRow: startRow - 1,
		StartCol: startCol - 1,
		EndRow:   endRow - 1,
		EndCol:   endCol - 1,
	}, nil
}
