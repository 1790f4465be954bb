// Package pivot reshapes row-per-entity metric exports into a transposed
// table with one row per metric and one column per entity, in a fixed
// caller-supplied order. Cells with missing or unparsable source data are
// zero, never absent, so downstream sums stay well defined.
package pivot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Record is a single input row keyed by column header.
type Record map[string]string

// DerivedColumn describes an output column computed as the element-wise sum
// of two existing columns and inserted immediately after an anchor column.
type DerivedColumn struct {
	Name        string `validate:"required"`
	SourceA     string `validate:"required"`
	SourceB     string `validate:"required"`
	InsertAfter string `validate:"required"`
}

// Spec parameterizes a transform run. MetricOrder defines the output rows
// and EntityOrder the output columns, both verbatim; KeyColumn names the
// input column holding each row's entity identifier.
type Spec struct {
	KeyColumn   string   `validate:"required"`
	RowLabel    string   `validate:"required"`
	MetricOrder []string `validate:"min=1"`
	EntityOrder []string `validate:"min=1"`
	Derived     *DerivedColumn
}

var validate = validator.New()

// Transformer converts input records into the transposed report table.
// Each call to Transform builds a fresh Table, so a single Transformer is
// safe to share across concurrent runs.
type Transformer struct {
	logger *slog.Logger
	spec   Spec
}

// NewTransformer validates the spec and returns a transformer for it.
func NewTransformer(logger *slog.Logger, spec Spec) (*Transformer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := validate.Struct(&spec); err != nil {
		return nil, fmt.Errorf("invalid pivot spec: %w", err)
	}

	return &Transformer{
		logger: logger,
		spec:   spec,
	}, nil
}

// Spec returns the spec this transformer was built with.
func (t *Transformer) Spec() Spec {
	return t.spec
}

// Transform pivots the records into a table with rows in MetricOrder and
// columns in EntityOrder. Entities without a matching record get an
// all-zero column (warned, not fatal); metrics absent from a record get a
// zero cell. When the spec carries a derived column and both of its source
// columns are present, the derived column is inserted after its anchor.
func (t *Transformer) Transform(ctx context.Context, records []Record) (*Table, error) {
	t.logger.InfoContext(ctx, "transforming data structure",
		slog.Int("record_count", len(records)),
		slog.Int("metric_count", len(t.spec.MetricOrder)),
		slog.Int("entity_count", len(t.spec.EntityOrder)))

	index := indexRecords(records, t.spec.KeyColumn)

	table := newTable(t.spec.RowLabel, t.spec.MetricOrder)

	for _, entity := range t.spec.EntityOrder {
		record, found := index[entity]
		if !found {
			// Non-fatal: the column stays zero-filled.
			t.logger.WarnContext(ctx, "entity not found in input data",
				slog.String("entity", entity),
				slog.String("key_column", t.spec.KeyColumn))
			table.appendColumn(entity, make([]float64, len(t.spec.MetricOrder)))
			continue
		}

		values := make([]float64, len(t.spec.MetricOrder))
		for i, metric := range t.spec.MetricOrder {
			cell, ok := record[metric]
			if !ok {
				t.logger.DebugContext(ctx, "metric column absent from record",
					slog.String("entity", entity),
					slog.String("metric", metric))
				continue
			}
			// Normalization to zero happens here, per cell, before any
			// derived-column arithmetic.
			values[i] = normalizeCell(cell)
		}
		table.appendColumn(entity, values)

		t.logger.DebugContext(ctx, "processed entity", slog.String("entity", entity))
	}

	if t.spec.Derived != nil {
		t.addDerivedColumn(ctx, table, *t.spec.Derived)
	}

	t.logger.InfoContext(ctx, "transformation complete",
		slog.Int("metrics", len(table.Metrics())),
		slog.Int("columns", len(table.Columns())))

	return table, nil
}

// addDerivedColumn computes the sum column and inserts it after its anchor.
// Missing source columns skip the derived column entirely, never fail the run.
func (t *Transformer) addDerivedColumn(ctx context.Context, table *Table, derived DerivedColumn) {
	if !table.HasColumn(derived.SourceA) || !table.HasColumn(derived.SourceB) {
		t.logger.WarnContext(ctx, "skipping derived column, source column missing",
			slog.String("column", derived.Name),
			slog.String("source_a", derived.SourceA),
			slog.String("source_b", derived.SourceB))
		return
	}

	values := make([]float64, len(table.Metrics()))
	for i, metric := range table.Metrics() {
		values[i] = table.Value(metric, derived.SourceA) + table.Value(metric, derived.SourceB)
	}

	table.insertColumnAfter(derived.InsertAfter, derived.Name, values)

	t.logger.InfoContext(ctx, "added derived column",
		slog.String("column", derived.Name),
		slog.String("insert_after", derived.InsertAfter))
}

// indexRecords builds a key value to record index in one pass. The first
// record seen for a key wins; later duplicates are ignored.
func indexRecords(records []Record, keyColumn string) map[string]Record {
	index := make(map[string]Record, len(records))
	for _, record := range records {
		key := strings.TrimSpace(record[keyColumn])
		if key == "" {
			continue
		}
		if _, exists := index[key]; exists {
			continue
		}
		index[key] = record
	}
	return index
}

// normalizeCell converts a raw cell to a number. Blank or unparsable cells
// are zero, so every output cell is a defined value.
func normalizeCell(cell string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// MetricColumns returns the header names that follow the bracketed metric
// naming convention, e.g. "[TopLine_Revenue]". Used for input diagnostics.
func MetricColumns(headers []string) []string {
	var metrics []string
	for _, header := range headers {
		name := strings.TrimSpace(header)
		if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
			metrics = append(metrics, name)
		}
	}
	return metrics
}
