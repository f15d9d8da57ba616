package classify

import (
	"testing"

	"github.com/dgallion1/docweave/internal/ir"
)

func TestGroupNoListItems(t *testing.T) {
	els := []ir.Element{
		&ir.ParagraphBlock{BlockID: ir.NewID(), Text: "just text"},
	}
	result := GroupListItems(els)

	if len(result) != 1 {
		t.Fatalf("expected 1 element, got %d", len(result))
	}
	if _, ok := result[0].(*ir.ParagraphBlock); !ok {
		t.Errorf("expected paragraph, got %T", result[0])
	}
}

func TestGroupSingleBulletRun(t *testing.T) {
	els := []ir.Element{
		&ir.PendingListItem{Text: "first", Page: 3},
		&ir.PendingListItem{Text: "second", Page: 3},
	}
	result := GroupListItems(els)

	if len(result) != 1 {
		t.Fatalf("expected 1 list block, got %d elements", len(result))
	}
	list, ok := result[0].(*ir.ListBlock)
	if !ok {
		t.Fatalf("expected list block, got %T", result[0])
	}
	if list.Style != ir.ListUnordered {
		t.Errorf("style = %q, want unordered", list.Style)
	}
	if list.Page != 3 {
		t.Errorf("page = %d, want 3", list.Page)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}
}

func TestGroupOrderedByFirstItem(t *testing.T) {
	els := []ir.Element{
		&ir.PendingListItem{Text: "one", Enumerated: true, Marker: "1."},
		&ir.PendingListItem{Text: "two", Enumerated: false},
	}
	result := GroupListItems(els)

	list := result[0].(*ir.ListBlock)
	if list.Style != ir.ListOrdered {
		t.Errorf("mixed run should take the first item's style, got %q", list.Style)
	}
}

func TestGroupNestedDepths(t *testing.T) {
	els := []ir.Element{
		&ir.PendingListItem{Text: "Parent", Depth: 0},
		&ir.PendingListItem{Text: "Child", Depth: 1},
		&ir.PendingListItem{Text: "Sibling", Depth: 0},
	}
	result := GroupListItems(els)

	list := result[0].(*ir.ListBlock)
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 root items, got %d", len(list.Items))
	}
	if list.Items[0].Text != "Parent" || list.Items[1].Text != "Sibling" {
		t.Errorf("root order wrong: %q, %q", list.Items[0].Text, list.Items[1].Text)
	}
	if len(list.Items[0].Children) != 1 || list.Items[0].Children[0].Text != "Child" {
		t.Errorf("Parent should own Child, got %v", list.Items[0].Children)
	}
	if len(list.Items[1].Children) != 0 {
		t.Errorf("Sibling should have no children, got %v", list.Items[1].Children)
	}
}

func TestGroupDepthsNormalizedToFirstItem(t *testing.T) {
	// The extraction engine may report nonzero depth for the whole run.
	els := []ir.Element{
		&ir.PendingListItem{Text: "a", Depth: 2},
		&ir.PendingListItem{Text: "b", Depth: 3},
	}
	result := GroupListItems(els)

	list := result[0].(*ir.ListBlock)
	if len(list.Items) != 1 {
		t.Fatalf("expected 1 root item, got %d", len(list.Items))
	}
	if len(list.Items[0].Children) != 1 {
		t.Fatalf("expected b nested under a, got %v", list.Items[0])
	}
}

func TestGroupFlushedByNonListElement(t *testing.T) {
	els := []ir.Element{
		&ir.PendingListItem{Text: "first list"},
		&ir.ParagraphBlock{BlockID: ir.NewID(), Text: "break"},
		&ir.PendingListItem{Text: "second list"},
	}
	result := GroupListItems(els)

	if len(result) != 3 {
		t.Fatalf("expected list, paragraph, list; got %d elements", len(result))
	}
	if _, ok := result[0].(*ir.ListBlock); !ok {
		t.Errorf("result[0] = %T, want list", result[0])
	}
	if _, ok := result[1].(*ir.ParagraphBlock); !ok {
		t.Errorf("result[1] = %T, want paragraph", result[1])
	}
	if _, ok := result[2].(*ir.ListBlock); !ok {
		t.Errorf("result[2] = %T, want list", result[2])
	}
}

func TestDetectMarkerFormat(t *testing.T) {
	tests := []struct {
		name    string
		markers []string
		want    ir.MarkerFormat
	}{
		{"lower letter dot", []string{"a.", "b.", "c."}, ir.MarkerLowerLetter},
		{"lower letter paren", []string{"a)", "b)"}, ir.MarkerLowerLetter},
		{"upper letter", []string{"A.", "B."}, ir.MarkerUpperLetter},
		{"lower roman", []string{"i.", "ii.", "iii."}, ir.MarkerLowerRoman},
		{"upper roman", []string{"I.", "II."}, ir.MarkerUpperRoman},
		{"decimal", []string{"1.", "2."}, ""},
		{"no markers", []string{"", "", ""}, ""},
		{"empty markers skipped", []string{"", "a."}, ir.MarkerLowerLetter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]*ir.PendingListItem, 0, len(tt.markers))
			for _, m := range tt.markers {
				items = append(items, &ir.PendingListItem{Text: "x", Enumerated: true, Marker: m})
			}
			if got := detectMarkerFormat(items); got != tt.want {
				t.Errorf("detectMarkerFormat(%v) = %q, want %q", tt.markers, got, tt.want)
			}
		})
	}
}

func TestGroupOrderedCarriesMarkerFormat(t *testing.T) {
	els := []ir.Element{
		&ir.PendingListItem{Text: "one", Enumerated: true, Marker: "a."},
		&ir.PendingListItem{Text: "two", Enumerated: true, Marker: "b."},
	}
	result := GroupListItems(els)

	list := result[0].(*ir.ListBlock)
	if list.MarkerFormat != ir.MarkerLowerLetter {
		t.Errorf("marker format = %q, want lowerLetter", list.MarkerFormat)
	}
}

func TestGroupUnorderedHasNoMarkerFormat(t *testing.T) {
	els := []ir.Element{
		&ir.PendingListItem{Text: "one", Marker: "a."},
	}
	result := GroupListItems(els)

	list := result[0].(*ir.ListBlock)
	if list.MarkerFormat != "" {
		t.Errorf("unordered list must not carry a marker format, got %q", list.MarkerFormat)
	}
}
