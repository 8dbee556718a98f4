package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"datasuite/domain/table"
)

func fixture() (table.CleanTable, table.AnalysisReport) {
	clean := table.CleanTable{
		Columns: []table.CleanColumn{
			{Name: "Product", Kind: table.KindCategorical, Values: []string{"Widget", "Gadget", "Widget"}},
			{Name: "Sales", Kind: table.KindNumeric, Values: []string{"100", "250", "400"}},
		},
	}
	report := table.AnalysisReport{
		GeneratedAt:  "2026-08-25 10:30:00",
		TotalRows:    3,
		TotalColumns: 2,
		Columns:      []string{"Product", "Sales"},
		NumericSummaries: []table.NumericSummary{
			{Column: "Sales", Mean: 250, Median: 250, Min: 100, Max: 400, Total: 750},
		},
		CategoricalSummaries: []table.CategoricalSummary{
			{Column: "Product", UniqueValues: 2, TopValues: []table.ValueCount{
				{Value: "Widget", Count: 2},
				{Value: "Gadget", Count: 1},
			}},
		},
		Quality: table.Quality{Completeness: 100, CompletenessLabel: "100.0%"},
	}
	return clean, report
}

func TestRenderPDF(t *testing.T) {
	clean, report := fixture()
	dir := t.TempDir()

	path, err := NewReportWriter("Acme Analytics").Render(clean, report, dir, "20260825_103000")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if filepath.Base(path) != "Report_20260825_103000.pdf" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("rendered pdf missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("rendered pdf is empty")
	}

	head := make([]byte, 5)
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open pdf: %v", err)
	}
	defer file.Close()
	if _, err := file.Read(head); err != nil {
		t.Fatalf("read pdf header: %v", err)
	}
	if string(head) != "%PDF-" {
		t.Errorf("file does not start with a PDF header: %q", head)
	}
}

func TestRenderPDFWithoutSummaries(t *testing.T) {
	clean, report := fixture()
	report.NumericSummaries = nil
	report.CategoricalSummaries = nil

	if _, err := NewReportWriter("Acme").Render(clean, report, t.TempDir(), "20260825_103001"); err != nil {
		t.Fatalf("Render without summaries failed: %v", err)
	}
}

func TestRenderPDFBadOutputDir(t *testing.T) {
	clean, report := fixture()
	if _, err := NewReportWriter("Acme").Render(clean, report, filepath.Join(t.TempDir(), "missing"), "20260825_103002"); err == nil {
		t.Error("expected error for nonexistent output directory")
	}
}
