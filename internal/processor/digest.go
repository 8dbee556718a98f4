package processor

import (
	"fmt"
	"strings"

	"datasuite/domain/table"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// digestNumericLimit and digestCategoricalLimit bound how many column
// summaries the digest surfaces, in original column order.
const (
	digestNumericLimit     = 3
	digestCategoricalLimit = 2
)

// printer adds English thousands separators to %d and %f verbs.
var printer = message.NewPrinter(language.English)

// BuildDigest renders the headline numbers of a report as a fixed-structure
// multi-line text block. It is a pure formatting function: the same report
// always yields the same bytes.
func BuildDigest(report table.AnalysisReport) string {
	lines := []string{
		"📊 Dataset Overview:",
		printer.Sprintf("   • Total Records: %d", report.TotalRows),
		fmt.Sprintf("   • Features: %d", report.TotalColumns),
		fmt.Sprintf("   • Data Quality: %s", report.Quality.CompletenessLabel),
		fmt.Sprintf("   • Duplicates Removed: %d", report.DuplicatesRemoved),
	}

	if len(report.NumericSummaries) > 0 {
		lines = append(lines, "", "💰 Key Metrics:")
		for i, ns := range report.NumericSummaries {
			if i >= digestNumericLimit {
				break
			}
			lines = append(lines,
				fmt.Sprintf("   • %s:", ns.Column),
				printer.Sprintf("     - Total: %.2f", ns.Total),
				printer.Sprintf("     - Average: %.2f", ns.Mean),
			)
		}
	}

	if len(report.CategoricalSummaries) > 0 {
		lines = append(lines, "", "📋 Categories:")
		for i, cs := range report.CategoricalSummaries {
			if i >= digestCategoricalLimit {
				break
			}
			lines = append(lines, fmt.Sprintf("   • %s: %d unique values", cs.Column, cs.UniqueValues))
		}
	}

	return strings.Join(lines, "\n")
}
