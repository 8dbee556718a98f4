package table

import "strconv"

// Cell is a single value in a raw table. Null marks an absent value;
// Value is the verbatim text as parsed from the source file.
type Cell struct {
	Value string `json:"value"`
	Null  bool   `json:"null,omitempty"`
}

// Column is an ordered sequence of heterogeneous cells under one header.
type Column struct {
	Name  string `json:"name"`
	Cells []Cell `json:"cells"`
}

// RawTable is the unprocessed input: ordered named columns, rectangular,
// with no further invariants. It may contain fully-empty rows and columns,
// duplicate rows, missing cells, and untrimmed text.
type RawTable struct {
	Columns []Column `json:"columns"`
}

// NumRows returns the row count of the table grid.
func (t RawTable) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// NumColumns returns the column count.
func (t RawTable) NumColumns() int {
	return len(t.Columns)
}

// ColumnNames returns the headers in original order.
func (t RawTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Clone returns a deep copy. Processors capture their input with Clone so
// later mutation of the caller's table cannot leak into cached results.
func (t RawTable) Clone() RawTable {
	cols := make([]Column, len(t.Columns))
	for i, col := range t.Columns {
		cells := make([]Cell, len(col.Cells))
		copy(cells, col.Cells)
		cols[i] = Column{Name: col.Name, Cells: cells}
	}
	return RawTable{Columns: cols}
}

// Kind classifies a cleaned column. It is decided once at clean time and
// never re-inferred downstream.
type Kind int

const (
	KindNumeric Kind = iota
	KindCategorical
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// CleanColumn is a fully-populated, type-classified column. Values holds
// no absent cells: numeric columns are median-imputed, categorical columns
// carry the "Unknown" placeholder and are whitespace-trimmed.
type CleanColumn struct {
	Name   string   `json:"name"`
	Kind   Kind     `json:"kind"`
	Values []string `json:"values"`
}

// Floats parses the column values as float64, skipping values that do not
// parse. For a KindNumeric column produced by cleaning, every value parses.
func (c CleanColumn) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			out = append(out, f)
		}
	}
	return out
}

// CleanTable is the cleaned dataset: no empty rows or columns, no duplicate
// rows, no missing cells, fixed column typing.
type CleanTable struct {
	Columns           []CleanColumn `json:"columns"`
	DuplicatesRemoved int           `json:"duplicates_removed"`
}

// NumRows returns the surviving row count.
func (t CleanTable) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// NumColumns returns the surviving column count.
func (t CleanTable) NumColumns() int {
	return len(t.Columns)
}

// ColumnNames returns the headers in original order.
func (t CleanTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// NumericColumns returns the numeric columns, preserving original order.
func (t CleanTable) NumericColumns() []CleanColumn {
	var out []CleanColumn
	for _, col := range t.Columns {
		if col.Kind == KindNumeric {
			out = append(out, col)
		}
	}
	return out
}

// CategoricalColumns returns the categorical columns, preserving original order.
func (t CleanTable) CategoricalColumns() []CleanColumn {
	var out []CleanColumn
	for _, col := range t.Columns {
		if col.Kind == KindCategorical {
			out = append(out, col)
		}
	}
	return out
}

// ToRaw converts a clean table back to the raw representation. Useful for
// re-running the cleaning pipeline over an already-clean table.
func (t CleanTable) ToRaw() RawTable {
	cols := make([]Column, len(t.Columns))
	for i, col := range t.Columns {
		cells := make([]Cell, len(col.Values))
		for j, v := range col.Values {
			cells[j] = Cell{Value: v}
		}
		cols[i] = Column{Name: col.Name, Cells: cells}
	}
	return RawTable{Columns: cols}
}
