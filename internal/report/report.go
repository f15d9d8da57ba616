// Package report summarizes a conversion for diagnostics. Reports are
// output artifacts only and never feed back into classification.
package report

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/docweave/internal/ir"
)

const lowConfidenceTextLimit = 80

// LowConfidenceItem is one heading whose classification fell below the
// reporting threshold.
type LowConfidenceItem struct {
	Text       string  `json:"text"`
	Level      int     `json:"level"`
	Page       int     `json:"page,omitempty"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// StageTiming records how long one pipeline stage took.
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration_ns"`
}

// Report is the diagnostic summary of one conversion.
type Report struct {
	SourceFile      string              `json:"source_file"`
	OutputFile      string              `json:"output_file,omitempty"`
	Title           string              `json:"title,omitempty"`
	PageCount       int                 `json:"page_count,omitempty"`
	BlockCounts     map[string]int      `json:"block_counts"`
	HeadingsByLevel map[int]int         `json:"headings_by_level"`
	LowConfidence   []LowConfidenceItem `json:"low_confidence,omitempty"`
	Warnings        []string            `json:"warnings,omitempty"`
	Timings         []StageTiming       `json:"timings,omitempty"`
}

// Build walks a finished document and tallies its structure. Headings with
// confidence below threshold are listed individually, text truncated for
// readability.
func Build(doc *ir.Document, threshold float64) *Report {
	r := &Report{
		SourceFile:      doc.Metadata.SourceFile,
		Title:           doc.Metadata.Title,
		PageCount:       doc.Metadata.PageCount,
		BlockCounts:     map[string]int{},
		HeadingsByLevel: map[int]int{},
	}
	for _, b := range doc.Body {
		r.walk(b, threshold)
	}
	if r.BlockCounts[string(ir.KindHeading)] == 0 {
		r.Warnings = append(r.Warnings, "no headings detected; output will be flat")
	}
	return r
}

func (r *Report) walk(b ir.Block, threshold float64) {
	r.BlockCounts[string(b.Kind())]++

	h, ok := b.(*ir.HeadingBlock)
	if !ok {
		return
	}
	r.HeadingsByLevel[h.Level]++
	if h.Confidence < threshold {
		r.LowConfidence = append(r.LowConfidence, LowConfidenceItem{
			Text:       truncate(h.Text, lowConfidenceTextLimit),
			Level:      h.Level,
			Page:       h.Page,
			Confidence: h.Confidence,
			Reason:     h.Reason,
		})
	}
	for _, child := range h.Children {
		r.walk(child, threshold)
	}
}

// AddTiming appends a stage duration.
func (r *Report) AddTiming(stage string, d time.Duration) {
	r.Timings = append(r.Timings, StageTiming{Stage: stage, Duration: d})
}

// Warn appends a formatted warning.
func (r *Report) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ToJSON serializes the report to indented JSON.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
