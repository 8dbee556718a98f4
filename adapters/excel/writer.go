package excel

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strconv"

	"datasuite/domain/table"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the rendered workbook.
const (
	sheetSummary     = "Summary"
	sheetCleanData   = "Clean Data"
	sheetNumeric     = "Numeric Analysis"
	sheetCategorical = "Categorical Analysis"
)

// headerFillColor matches the report brand color.
const headerFillColor = "1F77B4"

// ReportWriter renders the multi-sheet analysis workbook: summary,
// clean data, numeric analysis and categorical analysis sheets.
type ReportWriter struct {
	companyName string
}

// NewReportWriter creates a workbook renderer branded with companyName.
func NewReportWriter(companyName string) *ReportWriter {
	return &ReportWriter{companyName: companyName}
}

// Render writes Report_<stamp>.xlsx into outputDir and returns its path.
func (w *ReportWriter) Render(clean table.CleanTable, report table.AnalysisReport, outputDir, stamp string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	f.SetSheetName(f.GetSheetName(0), sheetSummary)
	if err := w.writeSummary(f, report); err != nil {
		return "", err
	}
	if err := w.writeCleanData(f, clean, headerStyle); err != nil {
		return "", err
	}
	if err := w.writeNumericAnalysis(f, report, headerStyle); err != nil {
		return "", err
	}
	if err := w.writeCategoricalAnalysis(f, report, headerStyle); err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, fmt.Sprintf("Report_%s.xlsx", stamp))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Printf("[ReportWriter] workbook written: %s", path)
	return path, nil
}

func (w *ReportWriter) writeSummary(f *excelize.File, report table.AnalysisReport) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Report Generated", report.GeneratedAt},
		{"Company", w.companyName},
		{"Total Records", report.TotalRows},
		{"Total Columns", report.TotalColumns},
		{"Data Quality", report.Quality.CompletenessLabel},
		{"Duplicates Removed", report.DuplicatesRemoved},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(sheetSummary, cellRef(0, i), &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i, err)
		}
	}
	f.SetColWidth(sheetSummary, "A", "A", 25)
	f.SetColWidth(sheetSummary, "B", "B", 30)
	return nil
}

func (w *ReportWriter) writeCleanData(f *excelize.File, clean table.CleanTable, headerStyle int) error {
	if _, err := f.NewSheet(sheetCleanData); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetCleanData, err)
	}

	for c, col := range clean.Columns {
		f.SetCellValue(sheetCleanData, cellRef(c, 0), col.Name)
		f.SetCellStyle(sheetCleanData, cellRef(c, 0), cellRef(c, 0), headerStyle)

		for r, v := range col.Values {
			// Numeric columns carry native numbers so spreadsheet formulas
			// keep working on the exported data.
			if col.Kind == table.KindNumeric {
				if num, err := strconv.ParseFloat(v, 64); err == nil {
					f.SetCellValue(sheetCleanData, cellRef(c, r+1), num)
					continue
				}
			}
			f.SetCellValue(sheetCleanData, cellRef(c, r+1), v)
		}

		colName, _ := excelize.ColumnNumberToName(c + 1)
		f.SetColWidth(sheetCleanData, colName, colName, 15)
	}
	return nil
}

func (w *ReportWriter) writeNumericAnalysis(f *excelize.File, report table.AnalysisReport, headerStyle int) error {
	if len(report.NumericSummaries) == 0 {
		return nil
	}
	if _, err := f.NewSheet(sheetNumeric); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetNumeric, err)
	}

	headers := []interface{}{"Column", "Mean", "Median", "Std Dev", "Min", "Max", "Total"}
	if err := f.SetSheetRow(sheetNumeric, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write numeric headers: %w", err)
	}
	f.SetCellStyle(sheetNumeric, "A1", cellRef(len(headers)-1, 0), headerStyle)

	for i, ns := range report.NumericSummaries {
		row := []interface{}{
			ns.Column,
			round2(ns.Mean),
			round2(ns.Median),
			round2(ns.StdDev),
			round2(ns.Min),
			round2(ns.Max),
			round2(ns.Total),
		}
		if err := f.SetSheetRow(sheetNumeric, cellRef(0, i+1), &row); err != nil {
			return fmt.Errorf("failed to write numeric row %d: %w", i, err)
		}
	}
	f.SetColWidth(sheetNumeric, "A", "G", 15)
	return nil
}

func (w *ReportWriter) writeCategoricalAnalysis(f *excelize.File, report table.AnalysisReport, headerStyle int) error {
	if len(report.CategoricalSummaries) == 0 {
		return nil
	}
	if _, err := f.NewSheet(sheetCategorical); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetCategorical, err)
	}

	headers := []interface{}{"Column", "Unique Values", "Top Value", "Top Count"}
	if err := f.SetSheetRow(sheetCategorical, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write categorical headers: %w", err)
	}
	f.SetCellStyle(sheetCategorical, "A1", cellRef(len(headers)-1, 0), headerStyle)

	for i, cs := range report.CategoricalSummaries {
		topValue, topCount := "N/A", 0
		if len(cs.TopValues) > 0 {
			topValue = cs.TopValues[0].Value
			topCount = cs.TopValues[0].Count
		}
		row := []interface{}{cs.Column, cs.UniqueValues, topValue, topCount}
		if err := f.SetSheetRow(sheetCategorical, cellRef(0, i+1), &row); err != nil {
			return fmt.Errorf("failed to write categorical row %d: %w", i, err)
		}
	}
	f.SetColWidth(sheetCategorical, "A", "D", 20)
	return nil
}

// cellRef converts zero-based column/row indices to an A1-style reference.
func cellRef(col, row int) string {
	ref, _ := excelize.CoordinatesToCellName(col+1, row+1)
	return ref
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
