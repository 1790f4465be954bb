package sink

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"funnelreport/internal/errors"
	"funnelreport/internal/pivot"
)

// buildTable runs a small transform so sinks are tested against the real
// table type.
func buildTable(t *testing.T) *pivot.Table {
	t.Helper()

	transformer, err := pivot.NewTransformer(slog.Default(), pivot.Spec{
		KeyColumn:   "Name",
		RowLabel:    "Master_CPC[TME Category]",
		MetricOrder: []string{"[TopLine_Revenue]", "[Base_usuarios]"},
		EntityOrder: []string{"Games", "Education"},
	})
	require.NoError(t, err)

	table, err := transformer.Transform(context.Background(), []pivot.Record{
		{"Name": "Games", "[TopLine_Revenue]": "100", "[Base_usuarios]": "2000"},
		{"Name": "Education", "[TopLine_Revenue]": "10.5", "[Base_usuarios]": "300"},
	})
	require.NoError(t, err)

	return table
}

func TestExcelSink_Store(t *testing.T) {
	table := buildTable(t)
	path := filepath.Join(t.TempDir(), "reports", "out.xlsx")

	snk := NewExcelSink(slog.Default(), path, "Category Report")
	require.NoError(t, snk.Store(context.Background(), table))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Category Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Master_CPC[TME Category]", "Games", "Education"}, rows[0])
	assert.Equal(t, []string{"[TopLine_Revenue]", "100", "10.5"}, rows[1])
	assert.Equal(t, []string{"[Base_usuarios]", "2000", "300"}, rows[2])
}

func TestExcelSink_Store_InvalidPath(t *testing.T) {
	table := buildTable(t)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "taken")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// Parent "directory" is a regular file, so the save must fail.
	snk := NewExcelSink(slog.Default(), filepath.Join(blocker, "out.xlsx"), "Report")
	err := snk.Store(context.Background(), table)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
}

func TestCSVSink_Store(t *testing.T) {
	table := buildTable(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	snk := NewCSVSink(slog.Default(), path)
	require.NoError(t, snk.Store(context.Background(), table))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// BOM prefix for Excel compatibility.
	require.True(t, len(content) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, content[:3])

	lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Master_CPC[TME Category],Games,Education", lines[0])
	assert.Equal(t, "[TopLine_Revenue],100,10.5", lines[1])
	assert.Equal(t, "[Base_usuarios],2000,300", lines[2])
}

func TestCSVSink_Store_InvalidPath(t *testing.T) {
	table := buildTable(t)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "taken")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	snk := NewCSVSink(slog.Default(), filepath.Join(blocker, "out.csv"))
	err := snk.Store(context.Background(), table)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "100", formatFloat(100))
	assert.Equal(t, "10.5", formatFloat(10.5))
	assert.Equal(t, "0", formatFloat(0))
}
