// Package sink persists transformed report tables. The Excel sink writes a
// worksheet mirroring the table's row and column order; the CSV sink writes
// the same shape as UTF-8 CSV for spreadsheet-free consumers.
package sink

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"funnelreport/internal/errors"
	"funnelreport/internal/pivot"
)

// ExcelSink writes a table to a worksheet of a new xlsx workbook.
type ExcelSink struct {
	logger *slog.Logger
	path   string
	sheet  string
}

// NewExcelSink creates a sink writing to the given path and sheet name.
func NewExcelSink(logger *slog.Logger, path, sheet string) *ExcelSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelSink{
		logger: logger,
		path:   path,
		sheet:  sheet,
	}
}

// Store writes the table: a header row of the row label followed by the
// column names, then one row per metric with the metric identifier in the
// leading cell. Numeric cells are written as numbers, not text.
func (s *ExcelSink) Store(ctx context.Context, table *pivot.Table) error {
	s.logger.InfoContext(ctx, "saving report workbook",
		slog.String("path", s.path),
		slog.String("sheet", s.sheet))

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewStorageError("failed to create output directory", err).
				WithContext("path", dir)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(s.sheet)
	if err != nil {
		return errors.NewStorageError("failed to create worksheet", err).
			WithContext("sheet", s.sheet)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.NewStorageError("failed to drop default worksheet", err)
	}

	header := make([]interface{}, 0, len(table.Columns())+1)
	header = append(header, table.RowLabel())
	for _, column := range table.Columns() {
		header = append(header, column)
	}
	if err := f.SetSheetRow(s.sheet, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write header row", err)
	}

	for i, metric := range table.Metrics() {
		row := make([]interface{}, 0, len(table.Columns())+1)
		row = append(row, metric)
		for _, value := range table.Row(metric) {
			row = append(row, value)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewStorageError("failed to compute cell coordinates", err)
		}
		if err := f.SetSheetRow(s.sheet, cell, &row); err != nil {
			return errors.NewStorageError("failed to write data row", err).
				WithContext("metric", metric)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return errors.NewStorageError("failed to save output workbook", err).
			WithContext("path", s.path)
	}

	s.logger.InfoContext(ctx, "report workbook saved",
		slog.String("path", s.path),
		slog.Int("rows", len(table.Metrics())),
		slog.Int("columns", len(table.Columns())))

	return nil
}
