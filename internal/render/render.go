// Package render writes a finished block tree to a Word document. The
// mapping is intentionally flat: headings become styled paragraphs, lists
// become indented marker-prefixed paragraphs, tables and figures map to
// their OOXML counterparts.
package render

import (
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docweave/internal/config"
	"github.com/dgallion1/docweave/internal/ir"
)

const screenDPI = 96.0

// Renderer converts IR documents into .docx files.
type Renderer struct {
	style config.Style
	image config.Image
}

// New builds a renderer from the style and image settings.
func New(cfg config.Config) *Renderer {
	return &Renderer{style: cfg.Style, image: cfg.Image}
}

// RenderFile writes doc to a .docx file at path.
func (r *Renderer) RenderFile(doc *ir.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if err := r.Render(doc, f); err != nil {
		return err
	}
	return f.Close()
}

// Render writes doc as a .docx stream to w.
func (r *Renderer) Render(doc *ir.Document, w io.Writer) error {
	out := docx.New().WithDefaultTheme()
	for _, b := range doc.Body {
		r.renderBlock(out, b)
	}
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func (r *Renderer) renderBlock(out *docx.Docx, b ir.Block) {
	switch v := b.(type) {
	case *ir.HeadingBlock:
		r.renderHeading(out, v)
	case *ir.ParagraphBlock:
		para := out.AddParagraph()
		writeRuns(para, v.Text, v.Runs)
	case *ir.ListBlock:
		r.renderList(out, v)
	case *ir.TableBlock:
		renderTable(out, v)
	case *ir.FigureBlock:
		r.renderFigure(out, v)
	case *ir.PageBreakBlock:
		out.AddParagraph().AddPageBreaks()
	}
}

func (r *Renderer) renderHeading(out *docx.Docx, h *ir.HeadingBlock) {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}

	para := out.AddParagraph()
	para.Style(fmt.Sprintf("%s%d", r.style.HeadingPrefix, level))

	lowConfidence := r.style.MarkLowConfidence && h.Confidence < r.style.LowConfidenceThreshold
	if lowConfidence {
		run := para.AddText(h.Text)
		run.Highlight(r.style.LowConfidenceHighlight)
		para.AddText(fmt.Sprintf(" [confidence %.2f]", h.Confidence)).Italic()
	} else {
		writeRuns(para, h.Text, h.Runs)
	}

	for _, child := range h.Children {
		r.renderBlock(out, child)
	}
}

func (r *Renderer) renderList(out *docx.Docx, l *ir.ListBlock) {
	counters := map[int]int{}
	var walk func(items []ir.ListItem, depth int)
	walk = func(items []ir.ListItem, depth int) {
		for _, item := range items {
			counters[depth]++
			para := out.AddParagraph()
			prefix := strings.Repeat("    ", depth)
			marker := markerText(l.Style, l.MarkerFormat, counters[depth])
			para.AddText(prefix + marker + " ")
			writeRuns(para, item.Text, item.Runs)
			if len(item.Children) > 0 {
				walk(item.Children, depth+1)
				counters[depth+1] = 0
			}
		}
	}
	walk(l.Items, 0)
}

// markerText renders the visible marker for the nth item of a list.
func markerText(style ir.ListStyle, format ir.MarkerFormat, n int) string {
	if style != ir.ListOrdered {
		return "•"
	}
	switch format {
	case ir.MarkerLowerLetter:
		return letterOrdinal('a', n) + "."
	case ir.MarkerUpperLetter:
		return letterOrdinal('A', n) + "."
	case ir.MarkerLowerRoman:
		return strings.ToLower(roman(n)) + "."
	case ir.MarkerUpperRoman:
		return roman(n) + "."
	default:
		return strconv.Itoa(n) + "."
	}
}

func letterOrdinal(base byte, n int) string {
	if n < 1 || n > 26 {
		return strconv.Itoa(n)
	}
	return string(base + byte(n-1))
}

func roman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var buf strings.Builder
	for i, v := range values {
		for n >= v {
			buf.WriteString(symbols[i])
			n -= v
		}
	}
	return buf.String()
}

func renderTable(out *docx.Docx, t *ir.TableBlock) {
	rows, cols := t.NumRows, t.NumCols
	if rows < 1 || cols < 1 {
		return
	}
	tbl := out.AddTable(rows, cols, 0, nil)
	for _, cell := range t.Cells {
		if cell.Row < 0 || cell.Row >= rows || cell.Col < 0 || cell.Col >= cols {
			continue
		}
		para := tbl.TableRows[cell.Row].TableCells[cell.Col].AddParagraph()
		writeRuns(para, cell.Text, cell.Runs)
	}
}

func (r *Renderer) renderFigure(out *docx.Docx, fig *ir.FigureBlock) {
	path := fig.ImagePath

	// Base64 payloads go through a temp file for insertion.
	if path == "" && fig.ImageBase64 != "" {
		if tmpPath, err := materializeImage(fig.ImageBase64); err == nil {
			defer os.Remove(tmpPath)
			path = tmpPath
		}
	}

	inserted := false
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			r.recordImageSize(fig, path)
			para := out.AddParagraph()
			if _, err := para.AddInlineDrawingFrom(path); err == nil {
				inserted = true
			}
		}
	}

	if !inserted {
		placeholder := r.image.PlaceholderText
		if fig.Caption != "" {
			placeholder += ": " + fig.Caption
		}
		out.AddParagraph().AddText(placeholder).Italic()
		return
	}

	if fig.Caption != "" {
		out.AddParagraph().AddText(fig.Caption).Italic()
	}
}

// recordImageSize fills in the figure's display dimensions when the source
// left them unset, clamping to the configured page bounds while preserving
// aspect ratio. The dimensions travel with the IR sidecar and the report.
func (r *Renderer) recordImageSize(fig *ir.FigureBlock, path string) {
	if fig.WidthInches > 0 && fig.HeightInches > 0 {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return
	}

	w := float64(cfg.Width) / screenDPI
	h := float64(cfg.Height) / screenDPI
	if w > r.image.MaxWidthInches {
		scale := r.image.MaxWidthInches / w
		w, h = w*scale, h*scale
	}
	if h > r.image.MaxHeightInches {
		scale := r.image.MaxHeightInches / h
		w, h = w*scale, h*scale
	}
	fig.WidthInches = w
	fig.HeightInches = h
}

func materializeImage(b64 string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	tmp, err := os.CreateTemp("", "docweave-img-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	tmp.Close()
	return tmp.Name(), nil
}

func writeRuns(para *docx.Paragraph, text string, runs []ir.TextRun) {
	if len(runs) == 0 {
		para.AddText(text)
		return
	}
	for _, run := range runs {
		r := para.AddText(run.Text)
		if run.Bold {
			r.Bold()
		}
		if run.Italic {
			r.Italic()
		}
		if run.Underline {
			r.Underline("single")
		}
		if run.Strikethrough {
			r.Strike(true)
		}
		// go-docx has no fluent setter for vertical alignment.
		if run.Superscript {
			r.RunProperties.VertAlign = &docx.VertAlign{Val: "superscript"}
		}
		if run.Subscript {
			r.RunProperties.VertAlign = &docx.VertAlign{Val: "subscript"}
		}
		if run.Highlight != "" {
			r.Highlight(run.Highlight)
		}
	}
}
