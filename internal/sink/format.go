package sink

import (
	"strconv"
)

// formatFloat formats a cell value for CSV output. Whole numbers render
// without a decimal point so the CSV matches what the workbook shows.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
