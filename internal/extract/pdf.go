package extract

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/docweave/internal/classify"
	"github.com/dgallion1/docweave/internal/ir"
)

// PDFFrontend handles PDF files. It tries the Go library first, then falls
// back to pdftotext if available.
type PDFFrontend struct {
	FallbackPdftotext bool
}

func (f *PDFFrontend) Extract(r io.Reader, filename string) (*Stream, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "docweave-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil && f.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	s := &Stream{Title: baseName(filename)}

	pages := strings.Split(text, "\f")
	for i, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		emitPDFPage(s, page, i+1)
	}
	s.PageCount = len(pages)

	s.HasParts = detectParts(s.Elements)
	return s, nil
}

// emitPDFPage splits one page of plain text into blank-line-separated
// paragraphs. Short standalone lines with numbering or structural cues
// become heading candidates; the resolver does the real work downstream.
func emitPDFPage(s *Stream, page string, pageNum int) {
	for _, para := range splitParagraphs(page) {
		lines := strings.Split(para, "\n")
		if len(lines) == 1 && looksLikeHeading(lines[0]) {
			s.Elements = append(s.Elements, &ir.HeadingBlock{
				BlockID:    ir.NewID(),
				Page:       pageNum,
				Text:       strings.TrimSpace(lines[0]),
				Confidence: 0.75,
			})
			continue
		}
		s.Elements = append(s.Elements, &ir.ParagraphBlock{
			BlockID: ir.NewID(),
			Page:    pageNum,
			Text:    strings.Join(lines, " "),
		})
	}
}

func looksLikeHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) > 100 || strings.HasSuffix(line, ".") {
		return false
	}
	if classify.IsLevel1Structural(line) {
		return true
	}
	if _, ok := classify.NumberingLevel(line); ok {
		return true
	}
	return false
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
