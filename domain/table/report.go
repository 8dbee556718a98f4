package table

// NumericSummary holds the descriptive statistics for one numeric column.
// StdDev is the sample standard deviation (ddof=1); columns with fewer than
// two values report 0.
type NumericSummary struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Total  float64 `json:"total"`
}

// ValueCount is one entry of a categorical frequency table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalSummary holds the frequency profile for one categorical column.
// TopValues lists at most the five most frequent values in descending count
// order; ties keep first-encountered order in the cleaned column.
type CategoricalSummary struct {
	Column       string       `json:"column"`
	UniqueValues int          `json:"unique_values"`
	TopValues    []ValueCount `json:"top_values"`
}

// ColumnMissing reports the missing-value percentage of one raw column.
type ColumnMissing struct {
	Column  string  `json:"column"`
	Percent float64 `json:"percent"`
}

// Quality aggregates missingness metrics measured against the raw table.
// Completeness is 100 minus the mean per-column missing percentage;
// CompletenessLabel is the same value formatted for display ("98.3%").
type Quality struct {
	Completeness      float64         `json:"completeness"`
	CompletenessLabel string          `json:"completeness_label"`
	MissingByColumn   []ColumnMissing `json:"missing_by_column"`
}

// AnalysisReport is the structured statistical summary of a dataset.
// All per-column collections are ordered slices so iteration follows the
// original column order deterministically.
type AnalysisReport struct {
	GeneratedAt          string               `json:"timestamp"`
	TotalRows            int                  `json:"total_rows"`
	TotalColumns         int                  `json:"total_columns"`
	DuplicatesRemoved    int                  `json:"duplicates_removed"`
	Columns              []string             `json:"columns"`
	NumericSummaries     []NumericSummary     `json:"numeric_summary"`
	CategoricalSummaries []CategoricalSummary `json:"categorical_summary"`
	Quality              Quality              `json:"data_quality"`
}
