package ports

import "datasuite/domain/table"

// Renderer writes one report artifact (a workbook, a PDF, ...) for a
// cleaned dataset and its analysis into outputDir and returns the file
// path. stamp is the shared Report_<stamp>.<ext> timestamp so sibling
// artifacts of one run carry matching names.
//
// A render failure must not invalidate the report: the same inputs stay
// reusable for a retry.
type Renderer interface {
	Render(clean table.CleanTable, report table.AnalysisReport, outputDir, stamp string) (string, error)
}
