package extract

import (
	"strings"
	"testing"

	"github.com/dgallion1/docweave/internal/ir"
)

func TestElementsFrontend_Labels(t *testing.T) {
	input := `{
  "title": "Quality Manual",
  "page_count": 3,
  "elements": [
    {"label": "title", "text": "Quality Manual", "page": 1},
    {"label": "section_header", "text": "1. Scope", "page": 1, "level": 2},
    {"label": "text", "text": "This manual applies to all sites.", "page": 1},
    {"label": "list_item", "text": "first item", "page": 1, "enumerated": true, "marker": "a.", "depth": 0},
    {"label": "table", "page": 2, "num_rows": 1, "num_cols": 2, "cells": [
      {"row": 0, "col": 0, "text": "A"}, {"row": 0, "col": 1, "text": "B"}
    ]},
    {"label": "picture", "page": 2, "image_path": "fig1.png"},
    {"label": "caption", "text": "Figure 1: Site layout", "page": 2},
    {"label": "page_break", "page": 2},
    {"label": "page_header", "text": "ACME Corp", "page": 1},
    {"label": "page_header", "text": "ACME Corp", "page": 2}
  ]
}`

	fe := &ElementsFrontend{}
	s, err := fe.Extract(strings.NewReader(input), "dump.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Title != "Quality Manual" {
		t.Errorf("title = %q", s.Title)
	}
	if s.PageCount != 3 {
		t.Errorf("page count = %d", s.PageCount)
	}

	if len(s.Elements) != 7 {
		t.Fatalf("expected 7 elements, got %d", len(s.Elements))
	}

	h, ok := s.Elements[0].(*ir.HeadingBlock)
	if !ok || h.Level != 1 || h.Text != "Quality Manual" {
		t.Errorf("element 0: expected level-1 title heading, got %#v", s.Elements[0])
	}
	if h.Confidence != 1.0 {
		t.Errorf("title confidence = %v", h.Confidence)
	}

	sec, ok := s.Elements[1].(*ir.HeadingBlock)
	if !ok || sec.Level != 2 || sec.Text != "1. Scope" {
		t.Errorf("element 1: expected section header, got %#v", s.Elements[1])
	}

	if _, ok := s.Elements[2].(*ir.ParagraphBlock); !ok {
		t.Errorf("element 2: expected paragraph, got %#v", s.Elements[2])
	}

	li, ok := s.Elements[3].(*ir.PendingListItem)
	if !ok {
		t.Fatalf("element 3: expected pending list item, got %#v", s.Elements[3])
	}
	if !li.Enumerated || li.Marker != "a." || li.Depth != 0 {
		t.Errorf("list item fields = %+v", li)
	}

	tbl, ok := s.Elements[4].(*ir.TableBlock)
	if !ok || tbl.NumRows != 1 || tbl.NumCols != 2 || len(tbl.Cells) != 2 {
		t.Errorf("element 4: expected 1x2 table, got %#v", s.Elements[4])
	}

	fig, ok := s.Elements[5].(*ir.FigureBlock)
	if !ok {
		t.Fatalf("element 5: expected figure, got %#v", s.Elements[5])
	}
	if fig.Caption != "Figure 1: Site layout" {
		t.Errorf("caption not attached to figure: %q", fig.Caption)
	}

	if _, ok := s.Elements[6].(*ir.PageBreakBlock); !ok {
		t.Errorf("element 6: expected page break, got %#v", s.Elements[6])
	}

	if len(s.Furniture) != 1 {
		t.Fatalf("expected 1 deduplicated furniture item, got %d", len(s.Furniture))
	}
	f := s.Furniture[0]
	if f.Type != ir.FurnitureHeader || f.Text != "ACME Corp" {
		t.Errorf("furniture = %+v", f)
	}
	if len(f.Pages) != 2 || f.Pages[0] != 1 || f.Pages[1] != 2 {
		t.Errorf("furniture pages = %v", f.Pages)
	}
}

func TestElementsFrontend_PageBreakKept(t *testing.T) {
	input := `{"elements": [
    {"label": "text", "text": "before", "page": 1},
    {"label": "page_break", "page": 1},
    {"label": "text", "text": "after", "page": 2}
  ]}`

	fe := &ElementsFrontend{}
	s, err := fe.Extract(strings.NewReader(input), "dump.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(s.Elements))
	}
	if _, ok := s.Elements[1].(*ir.PageBreakBlock); !ok {
		t.Errorf("expected page break, got %#v", s.Elements[1])
	}
	if s.Title != "dump" {
		t.Errorf("fallback title = %q", s.Title)
	}
}

func TestElementsFrontend_DetectsParts(t *testing.T) {
	input := `{"elements": [
    {"label": "section_header", "text": "PART I GENERAL PROVISIONS", "level": 1},
    {"label": "section_header", "text": "1. Definitions", "level": 2}
  ]}`

	fe := &ElementsFrontend{}
	s, err := fe.Extract(strings.NewReader(input), "contract.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.HasParts {
		t.Error("expected HasParts for PART-structured document")
	}
}

func TestElementsFrontend_InvalidJSON(t *testing.T) {
	fe := &ElementsFrontend{}
	if _, err := fe.Extract(strings.NewReader("{not json"), "bad.json"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
