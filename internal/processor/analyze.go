package processor

import (
	"fmt"
	"log"
	"sort"
	"time"

	"datasuite/domain/table"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	gonumstat "gonum.org/v1/gonum/stat"
)

// reportTimeFormat is the sortable timestamp carried on every report.
const reportTimeFormat = "2006-01-02 15:04:05"

// topValueLimit caps the categorical frequency table.
const topValueLimit = 5

// analyzeTable derives the full statistical summary from the cleaned table,
// with missingness measured against the original raw table. Per-column
// statistical failures degrade to a zero-valued summary for that column
// instead of aborting the whole analysis.
func analyzeTable(clean table.CleanTable, raw table.RawTable, now time.Time) table.AnalysisReport {
	report := table.AnalysisReport{
		GeneratedAt:       now.Format(reportTimeFormat),
		TotalRows:         clean.NumRows(),
		TotalColumns:      clean.NumColumns(),
		DuplicatesRemoved: clean.DuplicatesRemoved,
		Columns:           clean.ColumnNames(),
	}

	for _, col := range clean.NumericColumns() {
		report.NumericSummaries = append(report.NumericSummaries, summarizeNumeric(col))
	}
	for _, col := range clean.CategoricalColumns() {
		report.CategoricalSummaries = append(report.CategoricalSummaries, summarizeCategorical(col))
	}

	report.Quality = measureQuality(raw)
	return report
}

// summarizeNumeric computes the descriptive statistics for one numeric
// column. Values that fail to parse (possible when callers hand-build a
// CleanTable) are skipped; a column left with no parseable values yields a
// zero summary with a warning rather than an error.
func summarizeNumeric(col table.CleanColumn) table.NumericSummary {
	summary := table.NumericSummary{Column: col.Name}

	values := col.Floats()
	if len(values) == 0 {
		log.Printf("[Processor] column %q has no numeric values, emitting zero summary", col.Name)
		return summary
	}

	summary.Mean, _ = stats.Mean(values)
	summary.Median, _ = stats.Median(values)
	summary.Min, _ = stats.Min(values)
	summary.Max, _ = stats.Max(values)
	summary.Total = floats.Sum(values)

	// Sample standard deviation (ddof=1) is undefined below two values.
	if len(values) >= 2 {
		if sd, err := stats.StandardDeviationSample(values); err == nil {
			summary.StdDev = sd
		}
	}

	return summary
}

// summarizeCategorical builds the distinct count and top-5 frequency table
// for one categorical column. Ties keep first-encountered order: the sort
// is a stable descending pass over values in appearance order.
func summarizeCategorical(col table.CleanColumn) table.CategoricalSummary {
	counts := make(map[string]int, len(col.Values))
	var order []string
	for _, v := range col.Values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	top := make([]table.ValueCount, 0, len(order))
	for _, v := range order {
		top = append(top, table.ValueCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > topValueLimit {
		top = top[:topValueLimit]
	}

	return table.CategoricalSummary{
		Column:       col.Name,
		UniqueValues: len(order),
		TopValues:    top,
	}
}

// measureQuality computes per-column missing percentages over the original
// raw table (all raw columns, including ones the cleaner later dropped) and
// the overall completeness as 100 minus their mean.
func measureQuality(raw table.RawTable) table.Quality {
	rows := raw.NumRows()

	quality := table.Quality{Completeness: 100}
	if len(raw.Columns) == 0 {
		quality.CompletenessLabel = fmt.Sprintf("%.1f%%", quality.Completeness)
		return quality
	}

	percents := make([]float64, 0, len(raw.Columns))
	for _, col := range raw.Columns {
		nulls := 0
		for _, cell := range col.Cells {
			if cell.Null {
				nulls++
			}
		}
		pct := 0.0
		if rows > 0 {
			pct = float64(nulls) / float64(rows) * 100
		}
		percents = append(percents, pct)
		quality.MissingByColumn = append(quality.MissingByColumn, table.ColumnMissing{
			Column:  col.Name,
			Percent: pct,
		})
	}

	quality.Completeness = 100 - gonumstat.Mean(percents, nil)
	quality.CompletenessLabel = fmt.Sprintf("%.1f%%", quality.Completeness)
	return quality
}
