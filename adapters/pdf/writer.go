// Package pdf renders the paginated report document: title block,
// executive summary, numeric metrics and a frequency chart.
package pdf

import (
	"fmt"
	"log"
	"path/filepath"

	"datasuite/domain/table"

	"github.com/jung-kurt/gofpdf"
)

// Brand palette, shared with the workbook renderer.
var (
	brandR, brandG, brandB = 31, 119, 180
	fillR, fillG, fillB    = 245, 245, 220
)

// numericRowLimit caps the metrics table at one page worth of rows.
const numericRowLimit = 5

// ReportWriter renders the PDF report.
type ReportWriter struct {
	companyName string
}

// NewReportWriter creates a PDF renderer branded with companyName.
func NewReportWriter(companyName string) *ReportWriter {
	return &ReportWriter{companyName: companyName}
}

// Render writes Report_<stamp>.pdf into outputDir and returns its path.
func (w *ReportWriter) Render(clean table.CleanTable, report table.AnalysisReport, outputDir, stamp string) (string, error) {
	doc := gofpdf.New("P", "mm", "Letter", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	w.writeTitle(doc, tr, report)
	w.writeExecutiveSummary(doc, tr, report)
	if len(report.NumericSummaries) > 0 {
		w.writeNumericMetrics(doc, tr, report)
	}
	if len(report.CategoricalSummaries) > 0 {
		w.writeFrequencyChart(doc, tr, report.CategoricalSummaries[0])
	}

	path := filepath.Join(outputDir, fmt.Sprintf("Report_%s.pdf", stamp))
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	log.Printf("[ReportWriter] pdf written: %s", path)
	return path, nil
}

func (w *ReportWriter) writeTitle(doc *gofpdf.Fpdf, tr func(string) string, report table.AnalysisReport) {
	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(brandR, brandG, brandB)
	doc.CellFormat(0, 14, tr(w.companyName), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(0, 9, "Business Intelligence Report", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 7, "Generated: "+report.GeneratedAt, "", 1, "C", false, 0, "")
	doc.Ln(6)
}

func (w *ReportWriter) writeExecutiveSummary(doc *gofpdf.Fpdf, tr func(string) string, report table.AnalysisReport) {
	w.sectionHeading(doc, "Executive Summary")

	rows := [][2]string{
		{"Total Records", fmt.Sprintf("%d", report.TotalRows)},
		{"Features Analyzed", fmt.Sprintf("%d", report.TotalColumns)},
		{"Data Quality", report.Quality.CompletenessLabel},
		{"Duplicates Removed", fmt.Sprintf("%d", report.DuplicatesRemoved)},
	}

	w.tableHeader(doc, []string{"Metric", "Value"}, []float64{85, 85})
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	doc.SetFillColor(fillR, fillG, fillB)
	for _, row := range rows {
		doc.CellFormat(85, 8, tr(row[0]), "1", 0, "L", true, 0, "")
		doc.CellFormat(85, 8, tr(row[1]), "1", 1, "L", true, 0, "")
	}
	doc.Ln(8)
}

func (w *ReportWriter) writeNumericMetrics(doc *gofpdf.Fpdf, tr func(string) string, report table.AnalysisReport) {
	w.sectionHeading(doc, "Key Metrics Analysis")

	headers := []string{"Column", "Mean", "Median", "Min", "Max", "Total"}
	widths := []float64{40, 26, 26, 26, 26, 26}
	w.tableHeader(doc, headers, widths)

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(0, 0, 0)
	for i, ns := range report.NumericSummaries {
		if i >= numericRowLimit {
			break
		}
		cells := []string{
			ns.Column,
			fmt.Sprintf("%.2f", ns.Mean),
			fmt.Sprintf("%.2f", ns.Median),
			fmt.Sprintf("%.2f", ns.Min),
			fmt.Sprintf("%.2f", ns.Max),
			fmt.Sprintf("%.2f", ns.Total),
		}
		for j, cell := range cells {
			doc.CellFormat(widths[j], 7, tr(cell), "1", 0, "C", false, 0, "")
		}
		doc.Ln(-1)
	}
	doc.Ln(8)
}

// writeFrequencyChart draws a simple horizontal bar chart of the leading
// categorical column's top values.
func (w *ReportWriter) writeFrequencyChart(doc *gofpdf.Fpdf, tr func(string) string, cs table.CategoricalSummary) {
	if len(cs.TopValues) == 0 {
		return
	}

	w.sectionHeading(doc, fmt.Sprintf("Top Values: %s", cs.Column))

	maxCount := cs.TopValues[0].Count
	for _, vc := range cs.TopValues {
		if vc.Count > maxCount {
			maxCount = vc.Count
		}
	}

	const labelWidth, barMax, barHeight = 50.0, 100.0, 7.0
	doc.SetFont("Helvetica", "", 9)
	doc.SetFillColor(brandR, brandG, brandB)
	doc.SetTextColor(0, 0, 0)
	for _, vc := range cs.TopValues {
		doc.CellFormat(labelWidth, barHeight+2, tr(vc.Value), "", 0, "R", false, 0, "")
		x, y := doc.GetXY()
		width := barMax * float64(vc.Count) / float64(maxCount)
		doc.Rect(x+2, y+1, width, barHeight, "F")
		doc.SetXY(x+2+width+2, y)
		doc.CellFormat(20, barHeight+2, fmt.Sprintf("%d", vc.Count), "", 1, "L", false, 0, "")
	}
}

func (w *ReportWriter) sectionHeading(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	doc.Ln(2)
}

func (w *ReportWriter) tableHeader(doc *gofpdf.Fpdf, headers []string, widths []float64) {
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(255, 255, 255)
	doc.SetFillColor(brandR, brandG, brandB)
	for i, h := range headers {
		doc.CellFormat(widths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)
}
