package validation

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"datasuite/domain/core"
	"datasuite/domain/table"
)

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(txtPath, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateFile(csvPath, 50); err != nil {
		t.Errorf("valid csv rejected: %v", err)
	}
	if err := ValidateFile(txtPath, 50); !errors.Is(err, core.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := ValidateFile(filepath.Join(dir, "missing.csv"), 50); err == nil {
		t.Error("missing file accepted")
	}
}

func TestValidateFileSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.csv")
	// 2MB of data against a 1MB limit.
	if err := os.WriteFile(path, make([]byte, 2*1024*1024), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateFile(path, 1); !errors.Is(err, core.ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestValidateTable(t *testing.T) {
	twoCol := table.RawTable{Columns: []table.Column{
		{Name: "A", Cells: []table.Cell{{Value: "1"}}},
		{Name: "B", Cells: []table.Cell{{Value: "2"}}},
	}}
	oneCol := table.RawTable{Columns: twoCol.Columns[:1]}
	noRows := table.RawTable{Columns: []table.Column{
		{Name: "A"}, {Name: "B"},
	}}

	if err := ValidateTable(twoCol); err != nil {
		t.Errorf("valid table rejected: %v", err)
	}
	if err := ValidateTable(table.RawTable{}); !errors.Is(err, core.ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
	if err := ValidateTable(oneCol); !errors.Is(err, core.ErrTooFewColumns) {
		t.Errorf("expected ErrTooFewColumns, got %v", err)
	}
	if err := ValidateTable(noRows); !errors.Is(err, core.ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		address string
		valid   bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"  padded@example.com  ", true},
		{"missing-at.example.com", false},
		{"user@nodot", false},
		{"user@example.c", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.address); got != tt.valid {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.address, got, tt.valid)
		}
	}
}

func TestParseRecipients(t *testing.T) {
	got, err := ParseRecipients("a@example.com, B@example.com ,a@example.com,b@Example.com")
	if err != nil {
		t.Fatalf("ParseRecipients failed: %v", err)
	}
	want := []string{"a@example.com", "B@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recipients = %v, want %v (deduped case-insensitively, order preserved)", got, want)
	}
}

func TestParseRecipientsInvalid(t *testing.T) {
	_, err := ParseRecipients("good@example.com, bad-address")
	if !errors.Is(err, core.ErrInvalidRecipient) {
		t.Errorf("expected ErrInvalidRecipient, got %v", err)
	}

	_, err = ParseRecipients(" , ")
	if !errors.Is(err, core.ErrNoRecipients) {
		t.Errorf("expected ErrNoRecipients, got %v", err)
	}
}
