package source

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"funnelreport/internal/errors"
)

// writeWorkbook creates an xlsx file with the given sheet and rows.
func writeWorkbook(t *testing.T, path, sheet string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	require.NoError(t, f.SaveAs(path))
}

func TestExcelSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeWorkbook(t, path, "Export", [][]interface{}{
		{"Master_CPC[TME Category]", "[TopLine_Revenue]", "[Base_usuarios]"},
		{"Games", 100, 2000},
		{"Education", 10.5, 300},
		{"", "", ""},
		{"Images", 20, 400},
	})

	src := NewExcelSource(slog.Default(), path, "Export")
	records, headers, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Master_CPC[TME Category]", "[TopLine_Revenue]", "[Base_usuarios]"}, headers)
	require.Len(t, records, 3)

	assert.Equal(t, "Games", records[0]["Master_CPC[TME Category]"])
	assert.Equal(t, "100", records[0]["[TopLine_Revenue]"])
	assert.Equal(t, "10.5", records[1]["[TopLine_Revenue]"])
	assert.Equal(t, "Images", records[2]["Master_CPC[TME Category]"])
}

func TestExcelSource_Load_ShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeWorkbook(t, path, "Export", [][]interface{}{
		{"Name", "[A]", "[B]"},
		{"Games", 1},
	})

	src := NewExcelSource(slog.Default(), path, "")
	records, _, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Cell for the trailing column is simply absent from the record.
	_, ok := records[0]["[B]"]
	assert.False(t, ok)
}

func TestExcelSource_Load_MissingFile(t *testing.T) {
	src := NewExcelSource(slog.Default(), filepath.Join(t.TempDir(), "nope.xlsx"), "Export")

	_, _, err := src.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSource))
}

func TestExcelSource_Load_MissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeWorkbook(t, path, "Data", [][]interface{}{
		{"Name", "[A]"},
		{"Games", 1},
	})

	src := NewExcelSource(slog.Default(), path, "Export")

	_, _, err := src.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSource))
}

func TestExcelSource_DefaultSheet(t *testing.T) {
	src := NewExcelSource(nil, "input.xlsx", "")
	assert.Equal(t, DefaultSheet, src.sheet)
}
