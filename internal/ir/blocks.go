package ir

import (
	"strings"

	"github.com/google/uuid"
)

// BlockKind discriminates the concrete block types in a finished tree.
// The values double as the "type" field in the serialized form.
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindList      BlockKind = "list"
	KindTable     BlockKind = "table"
	KindFigure    BlockKind = "figure"
	KindPageBreak BlockKind = "page_break"
)

// Element is one unit of the flat pre-classification stream. The
// classification stages consume and produce []Element, mixing finalized
// blocks with pending list items that still need grouping.
type Element interface {
	element()
}

// Block is a finalized tree node. Every Block is also an Element so that
// finished blocks can flow through the classification stages untouched.
type Block interface {
	Element
	Kind() BlockKind
	ID() string
}

// NewID returns a short unique block identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// TextRun is a span of text with inline formatting.
type TextRun struct {
	Text          string `json:"text"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Superscript   bool   `json:"superscript,omitempty"`
	Subscript     bool   `json:"subscript,omitempty"`
	Highlight     string `json:"highlight,omitempty"` // Word highlight colour name
}

// ListItem is a single list entry, optionally with nested sub-items.
type ListItem struct {
	Text     string     `json:"text"`
	Runs     []TextRun  `json:"runs,omitempty"`
	Children []ListItem `json:"children,omitempty"`
}

// TableCell is one cell, addressed by row/col with optional spanning.
type TableCell struct {
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	RowSpan int       `json:"row_span,omitempty"`
	ColSpan int       `json:"col_span,omitempty"`
	Text    string    `json:"text"`
	Runs    []TextRun `json:"runs,omitempty"`
}

// ListStyle says whether a list is numbered or bulleted.
type ListStyle string

const (
	ListOrdered   ListStyle = "ordered"
	ListUnordered ListStyle = "unordered"
)

// MarkerFormat is the detected enumeration style of an ordered list.
// Empty means default decimal numbering.
type MarkerFormat string

const (
	MarkerLowerLetter MarkerFormat = "lowerLetter"
	MarkerUpperLetter MarkerFormat = "upperLetter"
	MarkerLowerRoman  MarkerFormat = "lowerRoman"
	MarkerUpperRoman  MarkerFormat = "upperRoman"
)

// HeadingBlock is a heading and everything nested beneath it. During
// classification Level may hold a placeholder value; the level resolver
// assigns the final 1..9 value before tree construction.
type HeadingBlock struct {
	BlockID    string    `json:"id"`
	Page       int       `json:"page,omitempty"`
	Level      int       `json:"level"`
	Text       string    `json:"text"`
	Runs       []TextRun `json:"runs,omitempty"`
	Children   []Block   `json:"children,omitempty"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason,omitempty"`
}

// AddReason appends a classification provenance tag, preserving the full
// derivation history for diagnostics.
func (h *HeadingBlock) AddReason(tag string) {
	if h.Reason == "" {
		h.Reason = tag
		return
	}
	h.Reason += "; " + tag
}

// ParagraphBlock is plain body text.
type ParagraphBlock struct {
	BlockID string    `json:"id"`
	Page    int       `json:"page,omitempty"`
	Text    string    `json:"text"`
	Runs    []TextRun `json:"runs,omitempty"`
}

// ListBlock is a grouped list with nested items.
type ListBlock struct {
	BlockID      string       `json:"id"`
	Page         int          `json:"page,omitempty"`
	Style        ListStyle    `json:"style"`
	MarkerFormat MarkerFormat `json:"marker_format,omitempty"`
	Items        []ListItem   `json:"items,omitempty"`
}

// TableBlock is a table with spanning cells.
type TableBlock struct {
	BlockID string      `json:"id"`
	Page    int         `json:"page,omitempty"`
	NumRows int         `json:"num_rows"`
	NumCols int         `json:"num_cols"`
	Cells   []TableCell `json:"cells,omitempty"`
}

// FigureBlock is an image with an optional caption. The image is referenced
// by path, with a base64 fallback for portability.
type FigureBlock struct {
	BlockID      string  `json:"id"`
	Page         int     `json:"page,omitempty"`
	ImagePath    string  `json:"image_path,omitempty"`
	ImageBase64  string  `json:"image_base64,omitempty"`
	Caption      string  `json:"caption,omitempty"`
	WidthInches  float64 `json:"width_inches,omitempty"`
	HeightInches float64 `json:"height_inches,omitempty"`
}

// PageBreakBlock marks an explicit page break.
type PageBreakBlock struct {
	BlockID string `json:"id"`
	Page    int    `json:"page,omitempty"`
}

func (h *HeadingBlock) Kind() BlockKind   { return KindHeading }
func (p *ParagraphBlock) Kind() BlockKind { return KindParagraph }
func (l *ListBlock) Kind() BlockKind      { return KindList }
func (t *TableBlock) Kind() BlockKind     { return KindTable }
func (f *FigureBlock) Kind() BlockKind    { return KindFigure }
func (b *PageBreakBlock) Kind() BlockKind { return KindPageBreak }

func (h *HeadingBlock) ID() string   { return h.BlockID }
func (p *ParagraphBlock) ID() string { return p.BlockID }
func (l *ListBlock) ID() string      { return l.BlockID }
func (t *TableBlock) ID() string     { return t.BlockID }
func (f *FigureBlock) ID() string    { return f.BlockID }
func (b *PageBreakBlock) ID() string { return b.BlockID }

func (h *HeadingBlock) element()    {}
func (p *ParagraphBlock) element()  {}
func (l *ListBlock) element()       {}
func (t *TableBlock) element()      {}
func (f *FigureBlock) element()     {}
func (b *PageBreakBlock) element()  {}
func (i *PendingListItem) element() {}

// PendingListItem holds an extracted list item before grouping. It carries
// the nesting depth reported by the extraction engine and never appears in
// a finished tree.
type PendingListItem struct {
	Text       string
	Runs       []TextRun
	Page       int
	Enumerated bool
	Marker     string
	Depth      int
}
