package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/docweave/internal/ir"
)

var (
	lowerLetterMarkerRe = regexp.MustCompile(`^[a-z][.)]`)
	upperLetterMarkerRe = regexp.MustCompile(`^[A-Z][.)]`)
	romanMarkerRe       = regexp.MustCompile(`(?i)^(?:i{1,3}|iv|vi{0,3}|ix|x)[.)]`)
)

// detectMarkerFormat infers an ordered list's numbering style from the first
// few raw markers ("a.", "B)", "iii.", ...). Empty markers are skipped; the
// first recognizable non-empty marker decides. Anything else means default
// decimal numbering.
func detectMarkerFormat(items []*ir.PendingListItem) ir.MarkerFormat {
	for _, item := range items[:min(len(items), 3)] {
		m := strings.TrimSpace(item.Marker)
		if m == "" {
			continue
		}
		first := rune(m[0])
		switch {
		case romanMarkerRe.MatchString(m) && unicode.IsLower(first):
			return ir.MarkerLowerRoman
		case lowerLetterMarkerRe.MatchString(m):
			return ir.MarkerLowerLetter
		case romanMarkerRe.MatchString(m) && unicode.IsUpper(first):
			return ir.MarkerUpperRoman
		case upperLetterMarkerRe.MatchString(m):
			return ir.MarkerUpperLetter
		}
		return ""
	}
	return ""
}

// GroupListItems collapses every run of consecutive pending list items into
// a single ListBlock with nested items; any other element flushes the run.
// The first buffered item decides the list style and page.
func GroupListItems(elements []ir.Element) []ir.Element {
	result := make([]ir.Element, 0, len(elements))
	var pending []*ir.PendingListItem

	flush := func() {
		if len(pending) == 0 {
			return
		}
		style := ir.ListUnordered
		var format ir.MarkerFormat
		if pending[0].Enumerated {
			style = ir.ListOrdered
			format = detectMarkerFormat(pending)
		}
		result = append(result, &ir.ListBlock{
			BlockID:      ir.NewID(),
			Page:         pending[0].Page,
			Style:        style,
			MarkerFormat: format,
			Items:        nestListItems(pending),
		})
		pending = nil
	}

	for _, el := range elements {
		if item, ok := el.(*ir.PendingListItem); ok {
			pending = append(pending, item)
			continue
		}
		flush()
		result = append(result, el)
	}
	flush()
	return result
}

// listNode builds the item tree with stable pointers before the final
// value-typed ListItems are materialized.
type listNode struct {
	item     ir.ListItem
	children []*listNode
}

// nestListItems turns a flat run of pending items into nested ListItems
// using the extraction-reported depth, normalized against the first item.
func nestListItems(pending []*ir.PendingListItem) []ir.ListItem {
	if len(pending) == 0 {
		return nil
	}

	base := pending[0].Depth
	type stackEntry struct {
		depth int
		node  *listNode
	}
	var roots []*listNode
	var stack []stackEntry

	for _, p := range pending {
		node := &listNode{item: ir.ListItem{Text: p.Text, Runs: p.Runs}}
		depth := p.Depth - base

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1].node
			parent.children = append(parent.children, node)
		} else {
			roots = append(roots, node)
		}
		stack = append(stack, stackEntry{depth, node})
	}

	items := make([]ir.ListItem, 0, len(roots))
	for _, r := range roots {
		items = append(items, materializeItem(r))
	}
	return items
}

func materializeItem(n *listNode) ir.ListItem {
	item := n.item
	for _, c := range n.children {
		item.Children = append(item.Children, materializeItem(c))
	}
	return item
}
