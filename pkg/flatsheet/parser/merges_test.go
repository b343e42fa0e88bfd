package parser

import (
	"path/filepath"
	"testing"

	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
	"github.com/xuri/excelize/v2"
)

func TestParseRangeRef(t *testing.T) {
	tests := []struct {
		ref      string
		expected models.MergeRange
	}{
		{"A1:C1", models.MergeRange{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2}},
		{"$B$2:$D$10", models.MergeRange{StartRow: 1, StartCol: 1, EndRow: 9, EndCol: 3}},
		{"'Лист 1'!A1:B2", models.MergeRange{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 1}},
		{"C3:A1", models.MergeRange{StartRow: 0, StartCol: 0, EndRow: 2, EndCol: 2}},
		{"E5", models.MergeRange{StartRow: 4, StartCol: 4, EndRow: 4, EndCol: 4}},
	}

	for _, tt := range tests {
		result, err := ParseRangeRef(tt.ref)
		if err != nil {
			t.Errorf("ParseRangeRef(%q) failed: %v", tt.ref, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ParseRangeRef(%q) = %+v, expected %+v", tt.ref, result, tt.expected)
		}
	}

	for _, bad := range []string{"", "A1:B2:C3", "1A:B2", "A1:"} {
		if _, err := ParseRangeRef(bad); err == nil {
			t.Errorf("ParseRangeRef(%q) should fail", bad)
		}
	}
}

func TestExtractMerges(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Согласование")
	f.SetCellValue(sheetName, "A2", "Руководитель")
	if err := f.MergeCell(sheetName, "A1", "D1"); err != nil {
		t.Fatalf("Failed to merge cells: %v", err)
	}
	if err := f.MergeCell(sheetName, "A2", "B3"); err != nil {
		t.Fatalf("Failed to merge cells: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "merges.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	merges, err := ExtractMerges(f2, sheetName)
	if err != nil {
		t.Fatalf("ExtractMerges failed: %v", err)
	}

	found := map[models.MergeRange]bool{}
	for _, m := range merges {
		found[m] = true
	}
	for _, want := range []models.MergeRange{
		{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 3},
		{StartRow: 1, StartCol: 0, EndRow: 2, EndCol: 1},
	} {
		if !found[want] {
			t.Errorf("Expected merge %+v in %+v", want, merges)
		}
	}
	if len(merges) != 2 {
		t.Errorf("Expected 2 merges, got %d", len(merges))
	}
}
