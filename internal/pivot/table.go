package pivot

// Table is the transposed report: rows are metrics, columns are entities,
// both in the order the spec mandated. Every (metric, column) cell is a
// defined float64. Tables are built by Transform and immutable afterwards.
type Table struct {
	rowLabel string
	metrics  []string
	columns  []string
	cells    map[string]map[string]float64 // metric -> column -> value
}

func newTable(rowLabel string, metrics []string) *Table {
	cells := make(map[string]map[string]float64, len(metrics))
	for _, metric := range metrics {
		cells[metric] = make(map[string]float64)
	}
	return &Table{
		rowLabel: rowLabel,
		metrics:  append([]string(nil), metrics...),
		cells:    cells,
	}
}

// RowLabel returns the header of the leading row-label column.
func (t *Table) RowLabel() string {
	return t.rowLabel
}

// Metrics returns the row identifiers in output order.
func (t *Table) Metrics() []string {
	return t.metrics
}

// Columns returns the column identifiers in output order, including any
// derived column at its inserted position.
func (t *Table) Columns() []string {
	return t.columns
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, column := range t.columns {
		if column == name {
			return true
		}
	}
	return false
}

// Value returns the cell at (metric, column). Unknown coordinates read as
// zero, consistent with the fill policy.
func (t *Table) Value(metric, column string) float64 {
	return t.cells[metric][column]
}

// Row returns the values of one metric row in column order.
func (t *Table) Row(metric string) []float64 {
	row := make([]float64, len(t.columns))
	for i, column := range t.columns {
		row[i] = t.cells[metric][column]
	}
	return row
}

// appendColumn adds a column at the end of the column order. values must be
// in metric order.
func (t *Table) appendColumn(name string, values []float64) {
	t.columns = append(t.columns, name)
	for i, metric := range t.metrics {
		t.cells[metric][name] = values[i]
	}
}

// insertColumnAfter inserts a column immediately after the anchor column,
// or at the end when the anchor is not present.
func (t *Table) insertColumnAfter(anchor, name string, values []float64) {
	position := len(t.columns)
	for i, column := range t.columns {
		if column == anchor {
			position = i + 1
			break
		}
	}

	t.columns = append(t.columns, "")
	copy(t.columns[position+1:], t.columns[position:])
	t.columns[position] = name

	for i, metric := range t.metrics {
		t.cells[metric][name] = values[i]
	}
}
