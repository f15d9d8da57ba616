package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docweave/internal/ir"
)

// rawElement is one entry of the extraction engine's labeled dump. Fields
// beyond label/text apply only to some labels and are zero otherwise.
type rawElement struct {
	Label string       `json:"label"`
	Text  string       `json:"text,omitempty"`
	Page  int          `json:"page,omitempty"`
	Level int          `json:"level,omitempty"`
	Runs  []ir.TextRun `json:"runs,omitempty"`

	// List items.
	Enumerated bool   `json:"enumerated,omitempty"`
	Marker     string `json:"marker,omitempty"`
	Depth      int    `json:"depth,omitempty"`

	// Tables.
	NumRows int            `json:"num_rows,omitempty"`
	NumCols int            `json:"num_cols,omitempty"`
	Cells   []ir.TableCell `json:"cells,omitempty"`

	// Pictures.
	ImagePath    string  `json:"image_path,omitempty"`
	ImageBase64  string  `json:"image_base64,omitempty"`
	Caption      string  `json:"caption,omitempty"`
	WidthInches  float64 `json:"width_inches,omitempty"`
	HeightInches float64 `json:"height_inches,omitempty"`
}

type elementsDump struct {
	Title     string       `json:"title,omitempty"`
	PageCount int          `json:"page_count,omitempty"`
	Elements  []rawElement `json:"elements"`
}

// ElementsFrontend reads the extraction engine's native labeled element
// dump. This is the highest-fidelity input: labels, pages, formatting runs,
// and list nesting depths arrive exactly as the engine reported them.
type ElementsFrontend struct{}

func (f *ElementsFrontend) Extract(r io.Reader, filename string) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read elements dump: %w", err)
	}

	var dump elementsDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parse elements dump: %w", err)
	}

	s := &Stream{
		Title:     dump.Title,
		PageCount: dump.PageCount,
	}
	if s.Title == "" {
		s.Title = baseName(filename)
	}

	furnitureSeen := map[string]int{} // dedup key -> index into s.Furniture

	for _, raw := range dump.Elements {
		switch raw.Label {
		case "title":
			s.Elements = append(s.Elements, &ir.HeadingBlock{
				BlockID:    ir.NewID(),
				Page:       raw.Page,
				Level:      1,
				Text:       strings.TrimSpace(raw.Text),
				Runs:       raw.Runs,
				Confidence: 1.0,
			})

		case "section_header":
			level := raw.Level
			if level <= 0 {
				level = 2
			}
			s.Elements = append(s.Elements, &ir.HeadingBlock{
				BlockID:    ir.NewID(),
				Page:       raw.Page,
				Level:      level,
				Text:       strings.TrimSpace(raw.Text),
				Runs:       raw.Runs,
				Confidence: 1.0,
			})

		case "list_item":
			s.Elements = append(s.Elements, &ir.PendingListItem{
				Text:       strings.TrimSpace(raw.Text),
				Runs:       raw.Runs,
				Page:       raw.Page,
				Enumerated: raw.Enumerated,
				Marker:     raw.Marker,
				Depth:      raw.Depth,
			})

		case "table":
			s.Elements = append(s.Elements, &ir.TableBlock{
				BlockID: ir.NewID(),
				Page:    raw.Page,
				NumRows: raw.NumRows,
				NumCols: raw.NumCols,
				Cells:   raw.Cells,
			})

		case "picture", "figure":
			s.Elements = append(s.Elements, &ir.FigureBlock{
				BlockID:      ir.NewID(),
				Page:         raw.Page,
				ImagePath:    raw.ImagePath,
				ImageBase64:  raw.ImageBase64,
				Caption:      raw.Caption,
				WidthInches:  raw.WidthInches,
				HeightInches: raw.HeightInches,
			})

		case "caption":
			// A caption immediately after its picture belongs to it.
			if fig := trailingFigure(s.Elements); fig != nil && fig.Caption == "" {
				fig.Caption = strings.TrimSpace(raw.Text)
				continue
			}
			s.appendParagraph(raw)

		case "page_break":
			s.Elements = append(s.Elements, &ir.PageBreakBlock{
				BlockID: ir.NewID(),
				Page:    raw.Page,
			})

		case "page_header", "page_footer":
			ftype := ir.FurnitureHeader
			if raw.Label == "page_footer" {
				ftype = ir.FurnitureFooter
			}
			text := strings.TrimSpace(raw.Text)
			if text == "" {
				continue
			}
			key := string(ftype) + "\x00" + text
			if idx, ok := furnitureSeen[key]; ok {
				s.Furniture[idx].Pages = appendPage(s.Furniture[idx].Pages, raw.Page)
			} else {
				furnitureSeen[key] = len(s.Furniture)
				s.Furniture = append(s.Furniture, ir.FurnitureItem{
					Type:  ftype,
					Text:  text,
					Pages: appendPage(nil, raw.Page),
				})
			}

		case "text", "paragraph", "code", "formula", "footnote":
			s.appendParagraph(raw)

		default:
			// Unknown labels degrade to plain paragraphs.
			s.appendParagraph(raw)
		}
	}

	s.HasParts = detectParts(s.Elements)
	return s, nil
}

func (s *Stream) appendParagraph(raw rawElement) {
	text := strings.TrimSpace(raw.Text)
	if text == "" {
		return
	}
	s.Elements = append(s.Elements, &ir.ParagraphBlock{
		BlockID: ir.NewID(),
		Page:    raw.Page,
		Text:    text,
		Runs:    raw.Runs,
	})
}

func trailingFigure(elements []ir.Element) *ir.FigureBlock {
	if len(elements) == 0 {
		return nil
	}
	f, _ := elements[len(elements)-1].(*ir.FigureBlock)
	return f
}

func appendPage(pages []int, page int) []int {
	if page <= 0 {
		return pages
	}
	for _, p := range pages {
		if p == page {
			return pages
		}
	}
	return append(pages, page)
}
