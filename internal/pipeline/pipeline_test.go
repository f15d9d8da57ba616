package pipeline

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docweave/internal/config"
	"github.com/dgallion1/docweave/internal/ir"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleMarkdown = `# Manual

Intro paragraph.

## 2.1 Scope

Applies everywhere.

- alpha
- beta
`

func TestConverterParse(t *testing.T) {
	conv := NewConverter(config.Default(), testLogger())
	res, err := conv.Parse(strings.NewReader(sampleMarkdown), "manual.md")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	doc := res.Document
	if doc.Metadata.Parser != "markdown" {
		t.Errorf("parser = %q", doc.Metadata.Parser)
	}
	if doc.Metadata.Title != "Manual" {
		t.Errorf("title = %q", doc.Metadata.Title)
	}
	if doc.Metadata.SourceHash == "" {
		t.Error("expected source hash")
	}

	if len(doc.Body) != 1 {
		t.Fatalf("expected 1 root block, got %d", len(doc.Body))
	}
	root, ok := doc.Body[0].(*ir.HeadingBlock)
	if !ok || root.Text != "Manual" {
		t.Fatalf("root = %#v", doc.Body[0])
	}
	// Intro paragraph and the 2.1 subsection live under the title.
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children under root, got %d", len(root.Children))
	}
	sub, ok := root.Children[1].(*ir.HeadingBlock)
	if !ok || sub.Text != "2.1 Scope" {
		t.Fatalf("subsection = %#v", root.Children[1])
	}
	// The bulleted items group into a single list under the subsection.
	foundList := false
	for _, c := range sub.Children {
		if l, ok := c.(*ir.ListBlock); ok {
			foundList = true
			if len(l.Items) != 2 {
				t.Errorf("list items = %d", len(l.Items))
			}
		}
	}
	if !foundList {
		t.Error("expected grouped list under subsection")
	}

	if res.Report == nil {
		t.Fatal("expected report")
	}
	if len(res.Report.Timings) != 2 {
		t.Errorf("expected extract+classify timings, got %v", res.Report.Timings)
	}
}

func TestConverterConvert(t *testing.T) {
	conv := NewConverter(config.Default(), testLogger())
	var out bytes.Buffer
	res, err := conv.Convert(strings.NewReader(sampleMarkdown), "manual.md", &out)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected rendered output")
	}
	if len(res.Report.Timings) != 3 {
		t.Errorf("expected extract+classify+render timings, got %v", res.Report.Timings)
	}
}

func TestConverterFromIR(t *testing.T) {
	conv := NewConverter(config.Default(), testLogger())
	res, err := conv.Parse(strings.NewReader(sampleMarkdown), "manual.md")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := res.Document.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}

	var out bytes.Buffer
	doc, err := conv.FromIR(data, &out)
	if err != nil {
		t.Fatalf("from ir: %v", err)
	}
	if doc.Metadata.Title != "Manual" {
		t.Errorf("title = %q", doc.Metadata.Title)
	}
	if out.Len() == 0 {
		t.Error("expected rendered output")
	}
}

func TestConverterFromIRInvalid(t *testing.T) {
	conv := NewConverter(config.Default(), testLogger())
	var out bytes.Buffer
	if _, err := conv.FromIR([]byte("{not json"), &out); err == nil {
		t.Error("expected error for invalid IR")
	}
}

func TestConverterUnsupportedExtension(t *testing.T) {
	conv := NewConverter(config.Default(), testLogger())
	if _, err := conv.Parse(strings.NewReader("x"), "doc.xyz"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestWorkerProcess(t *testing.T) {
	cfg := config.Default()
	conv := NewConverter(cfg, testLogger())
	w := NewWorker(conv, testLogger())

	job := &Job{
		ID:        NewJobID(),
		Status:    StatusQueued,
		Filename:  "manual.md",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData([]byte(sampleMarkdown))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("status = %q, errors = %v", snap.Status, snap.Errors)
	}
	if snap.ContentHash == "" {
		t.Error("expected content hash")
	}
	if out, ok := job.Output(); !ok || len(out) == 0 {
		t.Error("expected rendered output bytes")
	}
	if irData, ok := job.IRJSON(); !ok || !strings.Contains(string(irData), `"Manual"`) {
		t.Error("expected IR sidecar with title")
	}
	if job.FileData() != nil {
		t.Error("expected upload bytes released")
	}
}

func TestWorkerProcessFailure(t *testing.T) {
	w := NewWorker(NewConverter(config.Default(), testLogger()), testLogger())
	job := &Job{ID: NewJobID(), Filename: "broken.json", UpdatedAt: time.Now()}
	job.SetFileData([]byte("{not json"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("status = %q", snap.Status)
	}
	if len(snap.Errors) == 0 {
		t.Error("expected recorded error")
	}
}

func TestWorkerTitleOverride(t *testing.T) {
	w := NewWorker(NewConverter(config.Default(), testLogger()), testLogger())
	job := &Job{ID: NewJobID(), Filename: "manual.md", Title: "Override", UpdatedAt: time.Now()}
	job.SetFileData([]byte(sampleMarkdown))

	w.Process(context.Background(), job)

	if job.Report() == nil || job.Report().Title != "Override" {
		t.Errorf("report title not overridden")
	}
}

func TestOrchestratorProcessesJob(t *testing.T) {
	cfg := config.Default()
	cfg.Server.WorkerCount = 2
	o := NewOrchestrator(cfg, testLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := &Job{
		ID:        NewJobID(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  "manual.md",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData([]byte(sampleMarkdown))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		snap := o.GetJob(job.ID).Snapshot()
		if snap.Status == StatusCompleted {
			break
		}
		if snap.Status == StatusFailed {
			t.Fatalf("job failed: %v", snap.Errors)
		}
		select {
		case <-deadline:
			t.Fatalf("job did not finish, status %q", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestOrchestratorQueueFull(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxQueueSize = 1
	o := NewOrchestrator(cfg, testLogger())
	// Not started: nothing drains the queue.

	first := &Job{ID: "a", UpdatedAt: time.Now()}
	if err := o.Submit(first); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second := &Job{ID: "b", UpdatedAt: time.Now()}
	if err := o.Submit(second); err == nil {
		t.Error("expected queue-full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Error("expected failed status for rejected job")
	}
}
