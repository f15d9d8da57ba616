package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docweave/internal/ir"
)

// DocxFrontend handles .docx files.
type DocxFrontend struct{}

func (f *DocxFrontend) Extract(r io.Reader, filename string) (*Stream, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "docweave-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	s := &Stream{Title: baseName(filename)}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		style := docxStyle(para)
		switch {
		case strings.EqualFold(style, "Title"):
			s.Title = text
			s.Elements = append(s.Elements, &ir.HeadingBlock{
				BlockID:    ir.NewID(),
				Level:      1,
				Text:       text,
				Confidence: 1.0,
			})
		case docxHeadingLevel(style) > 0:
			s.Elements = append(s.Elements, &ir.HeadingBlock{
				BlockID:    ir.NewID(),
				Level:      docxHeadingLevel(style),
				Text:       text,
				Confidence: 1.0,
			})
		case strings.EqualFold(style, "ListParagraph"):
			s.Elements = append(s.Elements, &ir.PendingListItem{
				Text: text,
			})
		default:
			s.Elements = append(s.Elements, &ir.ParagraphBlock{
				BlockID: ir.NewID(),
				Text:    text,
			})
		}
	}

	s.HasParts = detectParts(s.Elements)
	return s, nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// docxHeadingLevel maps both the "Heading1" and "heading 1" style spellings
// that word processors emit.
func docxHeadingLevel(style string) int {
	norm := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if !strings.HasPrefix(norm, "heading") {
		return 0
	}
	switch norm[len("heading"):] {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	case "7":
		return 7
	case "8":
		return 8
	case "9":
		return 9
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
