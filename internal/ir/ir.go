// Package ir defines the intermediate representation shared by the
// extraction frontends, the classification pipeline, and the renderer.
// The IR is a tree of typed blocks where headings own their descendant
// content; it serializes to a stable JSON form with a "type" discriminator
// on every node.
package ir

import "encoding/json"

// FurnitureType distinguishes repeating page decoration.
type FurnitureType string

const (
	FurnitureHeader FurnitureType = "header"
	FurnitureFooter FurnitureType = "footer"
)

// FurnitureItem is a repeating page header or footer, deduplicated by text.
type FurnitureItem struct {
	Type  FurnitureType `json:"type"`
	Text  string        `json:"text"`
	Pages []int         `json:"pages,omitempty"`
}

// Metadata describes the source document and the frontend that read it.
type Metadata struct {
	SourceFile    string `json:"source_file"`
	SourceHash    string `json:"source_hash,omitempty"`
	Parser        string `json:"parser"`
	ParserVersion string `json:"parser_version,omitempty"`
	PageCount     int    `json:"page_count"`
	Title         string `json:"title"`
}

// Document is the complete intermediate representation of one source
// document: a finished block tree plus metadata and page furniture.
type Document struct {
	Metadata  Metadata        `json:"metadata"`
	Body      []Block         `json:"body"`
	Furniture []FurnitureItem `json:"furniture,omitempty"`
}

// ToJSON serializes the document to indented JSON.
func (d *Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// FromJSON parses a serialized document, reconstructing concrete block
// types from their discriminators.
func FromJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// TitleOrFirstHeading returns the document title from metadata, falling
// back to the first heading in the body.
func (d *Document) TitleOrFirstHeading() string {
	if d.Metadata.Title != "" {
		return d.Metadata.Title
	}
	for _, b := range d.Body {
		if h, ok := b.(*HeadingBlock); ok {
			return h.Text
		}
	}
	return ""
}
