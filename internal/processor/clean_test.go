package processor

import (
	"reflect"
	"testing"

	"datasuite/domain/table"
)

// Test fixture helpers. Cells are built positionally per column.
func cell(v string) table.Cell { return table.Cell{Value: v} }

var null = table.Cell{Null: true}

func col(name string, cells ...table.Cell) table.Column {
	return table.Column{Name: name, Cells: cells}
}

func raw(cols ...table.Column) table.RawTable {
	return table.RawTable{Columns: cols}
}

// salesFixture is the canonical scenario table: 5 rows of
// [Date, Product, Sales] with one fully duplicate row (rows 1 and 2)
// and one row with a missing Sales cell (row 4).
func salesFixture() table.RawTable {
	return raw(
		col("Date", cell("2026-01-01"), cell("2026-01-02"), cell("2026-01-02"), cell("2026-01-03"), cell("2026-01-04")),
		col("Product", cell("Widget"), cell("Gadget"), cell("Gadget"), cell("Widget"), cell("Gizmo")),
		col("Sales", cell("100"), cell("250"), cell("250"), cell("400"), null),
	)
}

func TestCleanDropsEmptyRowsAndColumns(t *testing.T) {
	input := raw(
		col("A", cell("1"), null, cell("3")),
		col("B", cell("x"), null, cell("y")),
		col("C", null, null, null),
	)

	clean := cleanTable(input)

	if got := clean.NumColumns(); got != 2 {
		t.Fatalf("expected all-empty column dropped, got %d columns", got)
	}
	if got := clean.NumRows(); got != 2 {
		t.Fatalf("expected all-empty row dropped, got %d rows", got)
	}
	if names := clean.ColumnNames(); !reflect.DeepEqual(names, []string{"A", "B"}) {
		t.Errorf("unexpected surviving columns: %v", names)
	}
}

func TestCleanRemovesDuplicatesKeepingFirst(t *testing.T) {
	input := raw(
		col("ID", cell("1"), cell("2"), cell("1"), cell("3"), cell("2")),
		col("Tag", cell("a"), cell("b"), cell("a"), cell("c"), cell("b")),
	)

	clean := cleanTable(input)

	if clean.DuplicatesRemoved != 2 {
		t.Errorf("expected 2 duplicates removed, got %d", clean.DuplicatesRemoved)
	}
	want := []string{"1", "2", "3"}
	if !reflect.DeepEqual(clean.Columns[0].Values, want) {
		t.Errorf("surviving rows lost order or first occurrence: %v", clean.Columns[0].Values)
	}
}

func TestCleanDuplicatesCountMatchesRowDelta(t *testing.T) {
	input := raw(
		col("A", cell("1"), null, cell("1"), cell("2"), cell("1")),
		col("B", cell("x"), null, cell("x"), cell("y"), cell("x")),
	)

	clean := cleanTable(input)

	rowsAfterEmptyDrop := 4
	if got := rowsAfterEmptyDrop - clean.NumRows(); got != clean.DuplicatesRemoved {
		t.Errorf("duplicates_removed %d does not match row delta %d", clean.DuplicatesRemoved, got)
	}
}

func TestCleanNullIsDistinctForDuplicateDetection(t *testing.T) {
	// Rows ("1", null) and ("1", "") must not collapse into one: an
	// empty-string cell that is not flagged Null is a present value.
	input := raw(
		col("A", cell("1"), cell("1")),
		col("B", null, cell("")),
	)

	clean := cleanTable(input)

	if clean.DuplicatesRemoved != 0 {
		t.Errorf("null and empty string treated as equal: %d removed", clean.DuplicatesRemoved)
	}
}

func TestCleanClassifiesColumns(t *testing.T) {
	input := raw(
		col("Amount", cell("12.5"), cell("-3"), null),
		col("Region", cell("north"), cell("42"), cell("south")),
	)

	clean := cleanTable(input)

	if clean.Columns[0].Kind != table.KindNumeric {
		t.Errorf("Amount classified as %s, want numeric", clean.Columns[0].Kind)
	}
	if clean.Columns[1].Kind != table.KindCategorical {
		t.Errorf("Region classified as %s, want categorical", clean.Columns[1].Kind)
	}
}

func TestCleanImputesNumericMedian(t *testing.T) {
	clean := cleanTable(salesFixture())

	if clean.NumRows() != 4 {
		t.Fatalf("expected 4 rows after cleaning, got %d", clean.NumRows())
	}
	if clean.DuplicatesRemoved != 1 {
		t.Errorf("expected 1 duplicate removed, got %d", clean.DuplicatesRemoved)
	}
	if clean.NumColumns() != 3 {
		t.Errorf("expected 3 columns, got %d", clean.NumColumns())
	}

	// Median of the surviving Sales values {100, 250, 400} is 250.
	sales := clean.Columns[2]
	if sales.Kind != table.KindNumeric {
		t.Fatalf("Sales classified as %s", sales.Kind)
	}
	if got := sales.Values[3]; got != "250" {
		t.Errorf("missing Sales cell imputed with %q, want median 250", got)
	}
}

func TestCleanImputesCategoricalUnknown(t *testing.T) {
	// Rows 4 and 5 both have a missing City but differ in Country, so
	// neither is a duplicate of the other and all 5 rows survive.
	input := raw(
		col("City", cell("Oslo"), null, cell("Bergen"), null, null),
		col("Country", cell("NO"), cell("NO"), cell("NO"), cell("SE"), cell("DK")),
	)

	clean := cleanTable(input)

	if clean.DuplicatesRemoved != 0 {
		t.Fatalf("expected no duplicates removed, got %d", clean.DuplicatesRemoved)
	}
	city := clean.Columns[0]
	want := []string{"Oslo", "Unknown", "Bergen", "Unknown", "Unknown"}
	if !reflect.DeepEqual(city.Values, want) {
		t.Errorf("categorical imputation mismatch: %v", city.Values)
	}
}

func TestCleanDedupsRowsWithMatchingNulls(t *testing.T) {
	// Two rows that agree on every cell, absent cells included, are exact
	// duplicates; only the first survives.
	input := raw(
		col("City", cell("Oslo"), null, null),
		col("Country", cell("NO"), cell("SE"), cell("SE")),
	)

	clean := cleanTable(input)

	if clean.NumRows() != 2 {
		t.Fatalf("expected 2 rows after dedup, got %d", clean.NumRows())
	}
	if clean.DuplicatesRemoved != 1 {
		t.Errorf("expected 1 duplicate removed, got %d", clean.DuplicatesRemoved)
	}
	if !reflect.DeepEqual(clean.Columns[0].Values, []string{"Oslo", "Unknown"}) {
		t.Errorf("surviving City values: %v", clean.Columns[0].Values)
	}
}

func TestCleanTrimsCategoricalWhitespace(t *testing.T) {
	input := raw(
		col("Name", cell("  alice "), cell("bob\t")),
		col("Score", cell(" 1 "), cell("2")),
	)

	clean := cleanTable(input)

	if !reflect.DeepEqual(clean.Columns[0].Values, []string{"alice", "bob"}) {
		t.Errorf("whitespace not trimmed: %v", clean.Columns[0].Values)
	}
}

func TestCleanIdempotent(t *testing.T) {
	first := cleanTable(salesFixture())
	second := cleanTable(first.ToRaw())

	if second.DuplicatesRemoved != 0 {
		t.Errorf("re-cleaning removed %d rows from an already-clean table", second.DuplicatesRemoved)
	}
	second.DuplicatesRemoved = first.DuplicatesRemoved
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cleaning is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestCleanNoMissingCellsAfterClean(t *testing.T) {
	clean := cleanTable(salesFixture())
	for _, c := range clean.Columns {
		if len(c.Values) != clean.NumRows() {
			t.Fatalf("column %s ragged after clean", c.Name)
		}
	}
}

func TestCleanAllMissingColumnDropped(t *testing.T) {
	input := raw(
		col("Kept", cell("a"), cell("b")),
		col("Gone", null, null),
	)

	clean := cleanTable(input)

	if clean.NumColumns() != 1 || clean.Columns[0].Name != "Kept" {
		t.Errorf("all-missing column survived: %v", clean.ColumnNames())
	}
}

func TestCleanFullyEmptyTable(t *testing.T) {
	input := raw(
		col("A", null, null),
		col("B", null, null),
	)

	clean := cleanTable(input)

	if clean.NumRows() != 0 || clean.NumColumns() != 0 {
		t.Errorf("expected empty clean table, got %dx%d", clean.NumRows(), clean.NumColumns())
	}
}

func TestImputeNumericAllMissingFallsBackToZero(t *testing.T) {
	c := col("Empty", null, null, null)
	values := imputeNumeric(c, []int{0, 1, 2})

	want := []string{"0", "0", "0"}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("all-missing numeric fallback mismatch: %v", values)
	}
}
