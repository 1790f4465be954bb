package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"funnelreport/internal/errors"
	"funnelreport/internal/pivot"
)

// Source provides the input records for a run.
type Source interface {
	Load(ctx context.Context) ([]pivot.Record, []string, error)
}

// Sink persists the transformed table. It is handed the table exactly once.
type Sink interface {
	Store(ctx context.Context, table *pivot.Table) error
}

// Runner executes one report run end to end.
type Runner struct {
	logger  *slog.Logger
	profile Profile
}

// NewRunner creates a runner for the given profile.
func NewRunner(logger *slog.Logger, profile Profile) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:  logger.With(slog.String("profile", profile.Name)),
		profile: profile,
	}
}

// Run loads the export, verifies the key column exists in its schema,
// pivots the records, and stores the result. Any returned error is fatal;
// no partial output is written.
func (r *Runner) Run(ctx context.Context, source Source, sink Sink) (*pivot.Table, error) {
	r.logger.InfoContext(ctx, "starting report run")

	records, headers, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load input data: %w", err)
	}

	if !containsHeader(headers, r.profile.Spec.KeyColumn) {
		return nil, errors.NewConfigError(
			fmt.Sprintf("missing required column: %s", r.profile.Spec.KeyColumn), nil).
			WithContext("sheet", r.profile.SourceSheet)
	}

	transformer, err := pivot.NewTransformer(r.logger, r.profile.Spec)
	if err != nil {
		return nil, errors.NewConfigError("invalid report profile", err).
			WithContext("profile", r.profile.Name)
	}

	table, err := transformer.Transform(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("transform records: %w", err)
	}

	if err := sink.Store(ctx, table); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}

	r.logPreview(ctx, table)

	return table, nil
}

// logPreview summarizes the generated report, mirroring the console preview
// the report consumers rely on to eyeball a run.
func (r *Runner) logPreview(ctx context.Context, table *pivot.Table) {
	metrics := table.Metrics()
	preview := metrics
	if len(preview) > 5 {
		preview = preview[:5]
	}

	r.logger.InfoContext(ctx, "report preview",
		slog.Int("metrics", len(metrics)),
		slog.Int("columns", len(table.Columns())),
		slog.Any("first_metrics", preview),
		slog.Any("column_order", table.Columns()))
}

// containsHeader reports whether the header row includes the named column.
func containsHeader(headers []string, name string) bool {
	for _, header := range headers {
		if strings.TrimSpace(header) == name {
			return true
		}
	}
	return false
}

// DefaultOutputPath derives the output path used when the caller does not
// supply one: "<input stem>_output<ext>" next to the input file.
func DefaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	if ext == "" {
		ext = ".xlsx"
	}
	return filepath.Join(filepath.Dir(inputPath), stem+"_output"+ext)
}
