// Package app orchestrates the report pipeline: validate an upload, read
// it into a table, run the processing core, render the report artifacts,
// and hand the digest to the notifier.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"datasuite/domain/core"
	"datasuite/domain/table"
	"datasuite/internal/processor"
	"datasuite/internal/validation"
	"datasuite/ports"
)

// fileStampFormat names report artifacts; it is the analysis timestamp
// compacted for filenames.
const fileStampFormat = "20060102_150405"

const reportTimeFormat = "2006-01-02 15:04:05"

// ReaderFactory opens a table reader for a source file path.
type ReaderFactory func(path string) ports.TableReader

// ReportService runs the full pipeline from source file to rendered
// report artifacts.
type ReportService struct {
	openReader    ReaderFactory
	excelRenderer ports.Renderer
	pdfRenderer   ports.Renderer
	notifier      ports.Notifier
	outputDir     string
	maxFileSizeMB int64
}

// GenerateRequest defines inputs for report generation
type GenerateRequest struct {
	FilePath string
}

// GenerateResult contains the pipeline outputs for one source file
type GenerateResult struct {
	ReportID   core.ReportID
	SourceFile string
	ExcelPath  string
	PDFPath    string
	Report     table.AnalysisReport
	Digest     string
	RuntimeMs  int64
}

// NewReportService creates a report service
func NewReportService(openReader ReaderFactory, excelRenderer, pdfRenderer ports.Renderer, notifier ports.Notifier, outputDir string, maxFileSizeMB int64) *ReportService {
	return &ReportService{
		openReader:    openReader,
		excelRenderer: excelRenderer,
		pdfRenderer:   pdfRenderer,
		notifier:      notifier,
		outputDir:     outputDir,
		maxFileSizeMB: maxFileSizeMB,
	}
}

// LoadProcessor validates the source file, reads it, and builds a
// processor over the table. Used by surfaces that want analysis without
// rendering artifacts.
func (s *ReportService) LoadProcessor(path string) (*processor.Processor, error) {
	if err := validation.ValidateFile(path, s.maxFileSizeMB); err != nil {
		return nil, fmt.Errorf("file validation failed: %w", err)
	}

	raw, err := s.openReader(path).ReadTable()
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	if err := validation.ValidateTable(raw); err != nil {
		return nil, fmt.Errorf("table validation failed: %w", err)
	}

	return processor.NewProcessor(raw), nil
}

// Generate runs the full pipeline: validate, read, clean, analyze, then
// render the Excel and PDF reports concurrently. Both artifacts share one
// timestamp derived from the analysis so a report pair is identifiable as
// one run.
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	startTime := time.Now()

	proc, err := s.LoadProcessor(req.FilePath)
	if err != nil {
		return nil, err
	}

	clean := proc.Clean()
	report := proc.Analyze()
	digest := proc.Summarize()
	stamp := fileStamp(report.GeneratedAt)

	var excelPath, pdfPath string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		excelPath, err = s.excelRenderer.Render(clean, report, s.outputDir, stamp)
		if err != nil {
			return fmt.Errorf("excel render failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pdfPath, err = s.pdfRenderer.Render(clean, report, s.outputDir, stamp)
		if err != nil {
			return fmt.Errorf("pdf render failed: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reportID := core.NewReportID()
	runtimeMs := time.Since(startTime).Milliseconds()
	log.Printf("[ReportService] generated report %s for %s in %dms (%d rows, %d columns)",
		reportID, req.FilePath, runtimeMs, report.TotalRows, report.TotalColumns)

	return &GenerateResult{
		ReportID:   reportID,
		SourceFile: req.FilePath,
		ExcelPath:  excelPath,
		PDFPath:    pdfPath,
		Report:     report,
		Digest:     digest,
		RuntimeMs:  runtimeMs,
	}, nil
}

// Notify emails the generated reports to a comma-separated recipient
// list. The recipient list is validated before any SMTP traffic.
func (s *ReportService) Notify(result *GenerateResult, recipientsRaw, subject string) (ports.DeliveryResult, error) {
	recipients, err := validation.ParseRecipients(recipientsRaw)
	if err != nil {
		return ports.DeliveryResult{Message: err.Error()}, err
	}

	return s.notifier.Send(ports.Notification{
		Recipients:  recipients,
		Subject:     subject,
		Digest:      result.Digest,
		Attachments: []string{result.ExcelPath, result.PDFPath},
	})
}

// fileStamp converts the report timestamp into the artifact name stamp.
func fileStamp(generatedAt string) string {
	t, err := time.Parse(reportTimeFormat, generatedAt)
	if err != nil {
		t = time.Now()
	}
	return t.Format(fileStampFormat)
}
