// Package extract reads source documents and produces the flat element
// stream that classification consumes. Frontends emit provisional labels
// only; all structural inference happens downstream.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docweave/internal/classify"
	"github.com/dgallion1/docweave/internal/ir"
)

// Frontend converts raw document bytes into a flat element stream.
type Frontend interface {
	Extract(r io.Reader, filename string) (*Stream, error)
	// Name identifies the frontend in document metadata.
	Name() string
}

// Stream is the pre-classification element sequence plus the document-wide
// facts a frontend observes while scanning.
type Stream struct {
	Elements  []ir.Element
	Furniture []ir.FurnitureItem
	Title     string
	PageCount int
	HasParts  bool
}

// SupportedExtensions lists file extensions this converter can handle.
var SupportedExtensions = map[string]bool{
	".json":     true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
	".pdf":      true,
	".csv":      true,
	".txt":      true,
}

// ForFile returns the appropriate frontend for a filename.
func ForFile(filename string) (Frontend, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &ElementsFrontend{}, nil
	case ".md", ".markdown":
		return &MarkdownFrontend{}, nil
	case ".html", ".htm":
		return &HTMLFrontend{}, nil
	case ".docx":
		return &DocxFrontend{}, nil
	case ".pdf":
		return &PDFFrontend{FallbackPdftotext: true}, nil
	case ".csv":
		return &CSVFrontend{}, nil
	case ".txt":
		return &TextFrontend{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// detectParts reports whether any heading candidate opens with a
// PART/CHAPTER marker, which switches level resolution to offset numbering.
func detectParts(elements []ir.Element) bool {
	for _, el := range elements {
		if h, ok := el.(*ir.HeadingBlock); ok && classify.IsStructuralMarker(h.Text) {
			return true
		}
	}
	return false
}

// baseName strips the directory and extension from a filename, which serves
// as the fallback document title.
func baseName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (f *ElementsFrontend) Name() string { return "elements" }
func (f *MarkdownFrontend) Name() string { return "markdown" }
func (f *HTMLFrontend) Name() string     { return "html" }
func (f *DocxFrontend) Name() string     { return "docx" }
func (f *PDFFrontend) Name() string      { return "pdf" }
func (f *CSVFrontend) Name() string      { return "csv" }
func (f *TextFrontend) Name() string     { return "text" }
