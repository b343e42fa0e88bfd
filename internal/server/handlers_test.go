package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/approval"
	"github.com/xuri/excelize/v2"
)

const (
	stage = "Согласование Заявки на ЗП"
	role  = "Руководитель ЦФО"
)

func workbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	cells := [][2]string{
		{"A1", "Номер"},
		{"B1", stage},
		{"B2", role},
		{"B3", approval.DateAssigned},
		{"C3", approval.DateCompleted},
		{"A4", "17"},
		{"B4", "01.02.2024"},
		{"C4", "04.02.2024"},
		// Row 5 is left blank.
		{"A6", "18"},
		{"B6", "07.02.2024"},
	}
	for _, c := range cells {
		require.NoError(t, f.SetCellValue(sheet, c[0], c[1]))
	}
	require.NoError(t, f.MergeCell(sheet, "B1", "C1"))
	require.NoError(t, f.MergeCell(sheet, "B2", "C2"))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func serve(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, New("", flatsheet.DefaultOptions()), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	New("", flatsheet.DefaultOptions()).Router().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestColumns(t *testing.T) {
	rec := serve(t, New(workbook(t), flatsheet.DefaultOptions()), "/api/columns")
	require.Equal(t, http.StatusOK, rec.Code)

	var columns []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &columns))
	assert.Equal(t, []string{
		"Номер",
		approval.Key(stage, role, approval.DateAssigned),
		approval.Key(stage, role, approval.DateCompleted),
	}, columns)
}

func TestRows(t *testing.T) {
	rec := serve(t, New(workbook(t), flatsheet.DefaultOptions()), "/api/rows")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2, "the blank row is not a record")
	assert.Equal(t, "17", rows[0]["Номер"])
	assert.Equal(t, "18", rows[1]["Номер"])
	assert.Equal(t, "01.02.2024", rows[0][approval.Key(stage, role, approval.DateAssigned)])
}

func TestSteps(t *testing.T) {
	rec := serve(t, New(workbook(t), flatsheet.DefaultOptions()),
		"/api/steps?stage="+url.QueryEscape(stage)+"&role="+url.QueryEscape(role))
	require.Equal(t, http.StatusOK, rec.Code)

	var steps []approval.Step
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &steps))
	require.Len(t, steps, 2, "the blank row yields no step")
	assert.Equal(t, "01.02.2024", steps[0].DateAssigned)
	assert.Equal(t, "04.02.2024", steps[0].DateCompleted)
	assert.Equal(t, "", steps[0].DaysInProgress)
	assert.Equal(t, "07.02.2024", steps[1].DateAssigned)
}

func TestStepsRequiresStage(t *testing.T) {
	rec := serve(t, New(workbook(t), flatsheet.DefaultOptions()), "/api/steps")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMissingWorkbook(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.xlsx"), flatsheet.DefaultOptions())
	rec := serve(t, s, "/api/rows")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "file not found")
}
