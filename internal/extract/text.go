package extract

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docweave/internal/ir"
)

// TextFrontend handles plain text files.
type TextFrontend struct{}

func (f *TextFrontend) Extract(r io.Reader, filename string) (*Stream, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	s := &Stream{Title: baseName(filename)}

	// Each blank-line-separated block becomes one element. Promotion picks
	// the numbered ones back out downstream.
	for _, para := range paragraphs {
		lines := strings.Split(para, "\n")
		if len(lines) == 1 && looksLikeHeading(lines[0]) {
			s.Elements = append(s.Elements, &ir.HeadingBlock{
				BlockID:    ir.NewID(),
				Text:       strings.TrimSpace(lines[0]),
				Confidence: 0.75,
			})
			continue
		}
		s.Elements = append(s.Elements, &ir.ParagraphBlock{
			BlockID: ir.NewID(),
			Text:    strings.Join(lines, " "),
		})
	}

	s.HasParts = detectParts(s.Elements)
	return s, nil
}
