// Package processor implements the data cleaning and analysis pipeline:
// raw tabular input in, cleaned table, statistical summary and insight
// digest out. Cleaning rules are deterministic per-column/per-row passes
// with explicit type dispatch; nothing relies on implicit coercion by a
// table library.
package processor

import (
	"time"

	"datasuite/domain/table"
)

// Processor owns one dataset for the duration of one session. The raw
// table is captured by defensive copy at construction; the cleaned table
// and analysis report are computed lazily on first request and cached for
// the processor's lifetime.
//
// A Processor is not safe for concurrent use. In a server context every
// request must construct its own instance.
type Processor struct {
	raw    table.RawTable
	now    func() time.Time
	clean  *table.CleanTable
	report *table.AnalysisReport
}

// NewProcessor captures a deep copy of raw, so later mutation of the
// caller's table cannot affect cached results.
func NewProcessor(raw table.RawTable) *Processor {
	return &Processor{raw: raw.Clone(), now: time.Now}
}

// NewProcessorAt is NewProcessor with an injected clock, for deterministic
// report timestamps in tests.
func NewProcessorAt(raw table.RawTable, now func() time.Time) *Processor {
	return &Processor{raw: raw.Clone(), now: now}
}

// Raw returns a copy of the captured input table.
func (p *Processor) Raw() table.RawTable {
	return p.raw.Clone()
}

// Clean runs the cleaning pipeline on first call and returns the cached
// result afterwards.
func (p *Processor) Clean() table.CleanTable {
	if p.clean == nil {
		ct := cleanTable(p.raw)
		p.clean = &ct
	}
	return *p.clean
}

// Analyze returns the statistical summary, cleaning first if that has not
// happened yet. The report timestamp is captured at first analysis; later
// calls return the identical cached report.
func (p *Processor) Analyze() table.AnalysisReport {
	if p.report == nil {
		clean := p.Clean()
		r := analyzeTable(clean, p.raw, p.now())
		p.report = &r
	}
	return *p.report
}

// Summarize renders the insight digest from the (possibly freshly computed)
// analysis report. The rendering is pure, so repeated calls on an unchanged
// processor return identical text.
func (p *Processor) Summarize() string {
	return BuildDigest(p.Analyze())
}
