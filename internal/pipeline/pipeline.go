// Package pipeline ties extraction, classification, and rendering together,
// both as a synchronous converter and as a queued worker pool for the HTTP
// service.
package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgallion1/docweave/internal/classify"
	"github.com/dgallion1/docweave/internal/config"
	"github.com/dgallion1/docweave/internal/extract"
	"github.com/dgallion1/docweave/internal/ir"
	"github.com/dgallion1/docweave/internal/render"
	"github.com/dgallion1/docweave/internal/report"
)

// Version identifies the converter build in document metadata.
const Version = "0.3.0"

// Result bundles the artifacts of one conversion.
type Result struct {
	Document *ir.Document
	Report   *report.Report
}

// Converter runs the extract-classify-render sequence for one document at a
// time. It is stateless and safe for concurrent use.
type Converter struct {
	cfg config.Config
	log *slog.Logger
}

func NewConverter(cfg config.Config, log *slog.Logger) *Converter {
	return &Converter{cfg: cfg, log: log}
}

// Parse extracts and classifies a document without rendering it. The
// returned report carries stage timings and low-confidence diagnostics.
func (c *Converter) Parse(r io.Reader, filename string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	fe, err := extract.ForFile(filename)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	stream, err := fe.Extract(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	extractDur := time.Since(start)

	start = time.Now()
	body := classify.Run(stream.Elements, stream.HasParts)
	classifyDur := time.Since(start)

	doc := &ir.Document{
		Metadata: ir.Metadata{
			SourceFile:    filename,
			SourceHash:    ContentHashHex(data),
			Parser:        fe.Name(),
			ParserVersion: Version,
			PageCount:     stream.PageCount,
			Title:         stream.Title,
		},
		Body:      body,
		Furniture: stream.Furniture,
	}

	rep := report.Build(doc, c.cfg.Style.LowConfidenceThreshold)
	rep.AddTiming("extract", extractDur)
	rep.AddTiming("classify", classifyDur)

	c.log.Info("parsed document",
		"file", filename,
		"frontend", fe.Name(),
		"elements", len(stream.Elements),
		"blocks", len(body),
		"has_parts", stream.HasParts,
	)
	return &Result{Document: doc, Report: rep}, nil
}

// Convert runs the full pipeline and writes the rendered document to out.
func (c *Converter) Convert(r io.Reader, filename string, out io.Writer) (*Result, error) {
	res, err := c.Parse(r, filename)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := render.New(c.cfg).Render(res.Document, out); err != nil {
		return nil, err
	}
	res.Report.AddTiming("render", time.Since(start))
	return res, nil
}

// FromIR renders a previously serialized intermediate representation.
func (c *Converter) FromIR(data []byte, out io.Writer) (*ir.Document, error) {
	doc, err := ir.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse ir: %w", err)
	}
	if err := render.New(c.cfg).Render(doc, out); err != nil {
		return nil, err
	}
	return doc, nil
}
