// Package source reads input datasets for the report transform. The only
// implementation reads a worksheet of an xlsx workbook, one record per data
// row, keyed by the header row.
package source

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"funnelreport/internal/errors"
	"funnelreport/internal/pivot"
)

// DefaultSheet is the worksheet the exports are read from.
const DefaultSheet = "Export"

// ExcelSource loads records from a worksheet of an xlsx workbook.
type ExcelSource struct {
	logger *slog.Logger
	path   string
	sheet  string
}

// NewExcelSource creates a source for the given workbook path and sheet.
// An empty sheet name selects DefaultSheet.
func NewExcelSource(logger *slog.Logger, path, sheet string) *ExcelSource {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &ExcelSource{
		logger: logger,
		path:   path,
		sheet:  sheet,
	}
}

// Load reads the worksheet and returns its data rows as records plus the
// header row. Rows with no non-blank cell are skipped.
func (s *ExcelSource) Load(ctx context.Context) ([]pivot.Record, []string, error) {
	s.logger.InfoContext(ctx, "reading input data",
		slog.String("path", s.path),
		slog.String("sheet", s.sheet))

	if _, err := os.Stat(s.path); err != nil {
		return nil, nil, errors.NewSourceError("input file not found", err).
			WithContext("path", s.path)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, nil, errors.NewSourceError("failed to open input workbook", err).
			WithContext("path", s.path)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, nil, errors.NewSourceError("worksheet not found in workbook", err).
			WithContext("sheet", s.sheet)
	}
	if len(rows) == 0 {
		return nil, nil, errors.NewSourceError("worksheet is empty", nil).
			WithContext("sheet", s.sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = strings.TrimSpace(cell)
	}

	var records []pivot.Record
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		record := make(pivot.Record, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = row[i]
			}
		}
		records = append(records, record)
	}

	s.logger.InfoContext(ctx, "input data loaded",
		slog.Int("rows", len(records)),
		slog.Int("columns", len(headers)),
		slog.Int("metric_columns", len(pivot.MetricColumns(headers))))

	return records, headers, nil
}

// isEmptyRow reports whether every cell of the row is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
