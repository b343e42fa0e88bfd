package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
)

func table() *models.Table {
	return &models.Table{
		Header: []string{"Номер", "Комментарий", "Сумма"},
		Rows: [][]models.Cell{
			{models.NumberCell(1), models.StringCell(`он сказал "да"; ок`), models.NumberCell(12345)},
			{{}, {}, {}},
			{models.NumberCell(2), models.StringCell("строка\nдва"), models.Cell{Kind: models.CellNumber, Num: 1.5, Text: "1,5"}},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table(), CSVOptions{Delimiter: ';'}))

	want := "Номер;Комментарий;Сумма\n" +
		`1;"он сказал ""да""; ок";12345` + "\n" +
		"2;\"строка\nдва\";1,5\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVCRLF(t *testing.T) {
	var buf bytes.Buffer
	tbl := &models.Table{Header: []string{"a", "b"}, Rows: [][]models.Cell{{models.StringCell("1"), models.StringCell("2")}}}
	require.NoError(t, WriteCSV(&buf, tbl, CSVOptions{Delimiter: ';', CRLF: true}))
	assert.Equal(t, "a;b\r\n1;2\r\n", buf.String())
}

func TestWriteCSVKeepsDuplicateColumns(t *testing.T) {
	var buf bytes.Buffer
	tbl := &models.Table{
		Header: []string{"SRf", "SRf"},
		Rows:   [][]models.Cell{{models.StringCell("first"), models.StringCell("second")}},
	}
	require.NoError(t, WriteCSV(&buf, tbl, CSVOptions{}))
	assert.Equal(t, "SRf;SRf\nfirst;second\n", buf.String())
}

func TestDefaultCSVOptions(t *testing.T) {
	opts := DefaultCSVOptions()
	assert.Equal(t, ';', opts.Delimiter)
	assert.Equal(t, runtime.GOOS == "windows", opts.CRLF)
}

func TestToJSONLastDuplicateWins(t *testing.T) {
	tbl := &models.Table{
		Header: []string{"SRf", "x", "SRf"},
		Rows:   [][]models.Cell{{models.StringCell("first"), models.NumberCell(7), models.StringCell("second")}},
	}

	data, err := ToJSON(tbl, false)
	require.NoError(t, err)

	var records []map[string]string
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0]["SRf"])
	assert.Equal(t, "7", records[0]["x"])
}

func TestBlankRowsSkippedInEveryFormat(t *testing.T) {
	// table() has a blank middle row.
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table(), CSVOptions{Delimiter: ';'}))

	data, err := ToJSON(table(), false)
	require.NoError(t, err)
	var records []map[string]string
	require.NoError(t, json.Unmarshal(data, &records))

	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0]["Номер"])
	assert.Equal(t, "2", records[1]["Номер"])
	assert.Contains(t, buf.String(), "\n2;")
}

func TestWriteCSVQuotesLeadingWhitespace(t *testing.T) {
	var buf bytes.Buffer
	tbl := &models.Table{
		Header: []string{"a", "b", "c"},
		Rows:   [][]models.Cell{{models.StringCell(" x"), models.StringCell("\ty"), models.StringCell("z ")}},
	}
	require.NoError(t, WriteCSV(&buf, tbl, CSVOptions{Delimiter: ';'}))
	assert.Equal(t, "a;b;c\n\" x\";\"\ty\";z \n", buf.String())
}

func TestColumnsToJSON(t *testing.T) {
	data, err := ColumnsToJSON(&models.Table{}, false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteFileBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteFile(path, []byte("first")))
	_, err := os.Stat(BackupPath(path))
	assert.True(t, os.IsNotExist(err), "no backup before the first overwrite")

	require.NoError(t, WriteFile(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
	backup, err := os.ReadFile(BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "first", string(backup))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "only the output and a single backup remain")
}

func TestWriteFileBackupIsSingleGeneration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	for _, content := range []string{"one", "two", "three"} {
		require.NoError(t, WriteFile(path, []byte(content)))
	}

	backup, err := os.ReadFile(BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "two", string(backup))
}

func TestWriteFileAbortsWhenBackupFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))
	// A directory at the backup path makes the copy fail.
	require.NoError(t, os.Mkdir(BackupPath(path), 0755))

	err := WriteFile(path, []byte("new"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackupFailed))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}
