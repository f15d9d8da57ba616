package extract

import (
	"strings"
	"testing"

	"github.com/dgallion1/docweave/internal/ir"
)

func TestTextFrontend_Paragraphs(t *testing.T) {
	input := `First paragraph
continues here.

Second paragraph.`

	fe := &TextFrontend{}
	s, err := fe.Extract(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Title != "notes" {
		t.Errorf("title = %q", s.Title)
	}
	if len(s.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(s.Elements))
	}
	p := s.Elements[0].(*ir.ParagraphBlock)
	if p.Text != "First paragraph continues here." {
		t.Errorf("joined paragraph = %q", p.Text)
	}
}

func TestTextFrontend_NumberedLineBecomesHeadingCandidate(t *testing.T) {
	input := `2.1 Scope

Applies to all personnel.`

	fe := &TextFrontend{}
	s, err := fe.Extract(strings.NewReader(input), "manual.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(s.Elements))
	}
	h, ok := s.Elements[0].(*ir.HeadingBlock)
	if !ok {
		t.Fatalf("expected heading candidate, got %#v", s.Elements[0])
	}
	if h.Text != "2.1 Scope" {
		t.Errorf("heading text = %q", h.Text)
	}
	if h.Confidence != 0.75 {
		t.Errorf("confidence = %v", h.Confidence)
	}
}

func TestTextFrontend_SentenceLineStaysParagraph(t *testing.T) {
	input := "This line ends with a period.\n"
	fe := &TextFrontend{}
	s, err := fe.Extract(strings.NewReader(input), "plain.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(s.Elements))
	}
	if _, ok := s.Elements[0].(*ir.ParagraphBlock); !ok {
		t.Errorf("expected paragraph, got %#v", s.Elements[0])
	}
}

func TestTextFrontend_StructuralMarkerSetsParts(t *testing.T) {
	input := `PART I GENERAL

1.1 Definitions

Terms used throughout.`

	fe := &TextFrontend{}
	s, err := fe.Extract(strings.NewReader(input), "contract.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.HasParts {
		t.Error("expected HasParts")
	}
}
