package sink

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"funnelreport/internal/errors"
	"funnelreport/internal/pivot"
)

// CSVSink writes a table as a CSV file with a UTF-8 BOM so spreadsheet
// applications detect the encoding.
type CSVSink struct {
	logger *slog.Logger
	path   string
}

// NewCSVSink creates a sink writing CSV to the given path.
func NewCSVSink(logger *slog.Logger, path string) *CSVSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVSink{
		logger: logger,
		path:   path,
	}
}

// Store writes the table in the same row/column order as the Excel sink.
func (s *CSVSink) Store(ctx context.Context, table *pivot.Table) error {
	s.logger.InfoContext(ctx, "saving report CSV",
		slog.String("path", s.path))

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewStorageError("failed to create output directory", err).
				WithContext("path", dir)
		}
	}

	file, err := os.Create(s.path)
	if err != nil {
		return errors.NewStorageError("failed to create output file", err).
			WithContext("path", s.path)
	}
	defer file.Close()

	// UTF-8 BOM for Excel compatibility.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return errors.NewStorageError("failed to write BOM", err)
	}

	writer := csv.NewWriter(file)

	header := append([]string{table.RowLabel()}, table.Columns()...)
	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write header row", err)
	}

	for _, metric := range table.Metrics() {
		row := make([]string, 0, len(table.Columns())+1)
		row = append(row, metric)
		for _, value := range table.Row(metric) {
			row = append(row, formatFloat(value))
		}
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError("failed to write data row", err).
				WithContext("metric", metric)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV output", err)
	}

	s.logger.InfoContext(ctx, "report CSV saved",
		slog.String("path", s.path),
		slog.Int("rows", len(table.Metrics())),
		slog.Int("columns", len(table.Columns())))

	return nil
}
