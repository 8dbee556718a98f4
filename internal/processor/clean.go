package processor

import (
	"strconv"
	"strings"

	"datasuite/domain/table"

	"github.com/montanaflynn/stats"
)

// categoricalPlaceholder fills absent cells in categorical columns.
const categoricalPlaceholder = "Unknown"

// cleanTable runs the full cleaning pipeline over a raw table:
//
//  1. drop rows and columns whose every cell is absent (both evaluated
//     against the original grid, so their relative order is irrelevant)
//  2. drop duplicate rows, keeping the first occurrence; absent cells count
//     as a distinct comparable value
//  3. classify each surviving column as numeric or categorical
//  4. impute absent cells (column median for numeric, "Unknown" for text)
//  5. trim whitespace on categorical cells
//
// The function is pure and total: identical input yields identical output
// and a table that empties out in step 1 yields an empty CleanTable rather
// than an error.
func cleanTable(raw table.RawTable) table.CleanTable {
	rows := raw.NumRows()

	keepRow := make([]bool, rows)
	for r := 0; r < rows; r++ {
		for _, col := range raw.Columns {
			if !col.Cells[r].Null {
				keepRow[r] = true
				break
			}
		}
	}

	var keepCols []table.Column
	for _, col := range raw.Columns {
		for _, cell := range col.Cells {
			if !cell.Null {
				keepCols = append(keepCols, col)
				break
			}
		}
	}

	var survivors []int
	for r := 0; r < rows; r++ {
		if keepRow[r] {
			survivors = append(survivors, r)
		}
	}

	// Duplicate removal on exact post-drop cell equality. The key separates
	// cells with \x00 and marks absent cells with \x01 so a null never
	// collides with a literal value.
	seen := make(map[string]struct{}, len(survivors))
	var deduped []int
	duplicates := 0
	var key strings.Builder
	for _, r := range survivors {
		key.Reset()
		for _, col := range keepCols {
			cell := col.Cells[r]
			if cell.Null {
				key.WriteByte('\x01')
			} else {
				key.WriteString(cell.Value)
			}
			key.WriteByte('\x00')
		}
		k := key.String()
		if _, dup := seen[k]; dup {
			duplicates++
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, r)
	}

	clean := table.CleanTable{DuplicatesRemoved: duplicates}
	for _, col := range keepCols {
		cc := table.CleanColumn{Name: col.Name}
		if isNumericColumn(col, deduped) {
			cc.Kind = table.KindNumeric
			cc.Values = imputeNumeric(col, deduped)
		} else {
			cc.Kind = table.KindCategorical
			cc.Values = imputeCategorical(col, deduped)
		}
		clean.Columns = append(clean.Columns, cc)
	}

	return clean
}

// isNumericColumn reports whether every non-absent cell among the surviving
// rows parses as a floating-point number.
func isNumericColumn(col table.Column, rows []int) bool {
	any := false
	for _, r := range rows {
		cell := col.Cells[r]
		if cell.Null {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell.Value), 64); err != nil {
			return false
		}
		any = true
	}
	return any
}

// imputeNumeric fills absent cells with the median of the column's
// non-absent values. A column with no non-absent values falls back to 0;
// that case cannot be reached through cleanTable (step 1 drops all-null
// columns) but the helper stays total for direct callers.
func imputeNumeric(col table.Column, rows []int) []string {
	var present []float64
	for _, r := range rows {
		cell := col.Cells[r]
		if cell.Null {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(cell.Value), 64); err == nil {
			present = append(present, f)
		}
	}

	fill := 0.0
	if len(present) > 0 {
		if m, err := stats.Median(present); err == nil {
			fill = m
		}
	}
	fillStr := strconv.FormatFloat(fill, 'f', -1, 64)

	values := make([]string, 0, len(rows))
	for _, r := range rows {
		cell := col.Cells[r]
		if cell.Null {
			values = append(values, fillStr)
		} else {
			values = append(values, strings.TrimSpace(cell.Value))
		}
	}
	return values
}

// imputeCategorical fills absent cells with the "Unknown" placeholder and
// trims surrounding whitespace from the rest.
func imputeCategorical(col table.Column, rows []int) []string {
	values := make([]string, 0, len(rows))
	for _, r := range rows {
		cell := col.Cells[r]
		if cell.Null {
			values = append(values, categoricalPlaceholder)
		} else {
			values = append(values, strings.TrimSpace(cell.Value))
		}
	}
	return values
}
