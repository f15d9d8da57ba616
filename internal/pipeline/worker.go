package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docweave/internal/render"
)

// Worker processes queued conversion jobs.
type Worker struct {
	conv *Converter
	log  *slog.Logger
}

func NewWorker(conv *Converter, log *slog.Logger) *Worker {
	return &Worker{conv: conv, log: log}
}

// Process runs the full conversion for a job. The context cancels queued
// work on shutdown; a conversion already underway runs to completion.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "file", job.Filename)

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	start := time.Now()
	job.SetStatus(StatusExtracting, "extracting elements")

	res, err := w.conv.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	job.SetStatus(StatusClassifying, "building heading tree")
	if job.Title != "" {
		res.Document.Metadata.Title = job.Title
		res.Report.Title = job.Title
	}
	job.ContentHash = res.Document.Metadata.SourceHash

	irJSON, err := res.Document.ToJSON()
	if err != nil {
		log.Error("ir serialization failed", "error", err)
		job.AddError(fmt.Sprintf("serialize ir: %s", err))
		job.SetStatus(StatusFailed, "classifying")
		return
	}

	job.SetStatus(StatusRendering, "writing document")
	var out bytes.Buffer
	renderStart := time.Now()
	if err := render.New(w.conv.cfg).Render(res.Document, &out); err != nil {
		log.Error("render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	res.Report.AddTiming("render", time.Since(renderStart))

	job.SetResult(out.Bytes(), irJSON, res.Report)
	job.SetStatus(StatusCompleted, "done")
	log.Info("conversion complete",
		"blocks", len(res.Document.Body),
		"output_bytes", out.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
