package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/docweave/internal/ir"
)

// Multi-level numbering prefix: two or more dot-separated numeric segments,
// an optional dot, a space, then content.
var multiLevelNumberRe = regexp.MustCompile(`^(\d+(?:\.\d+)+)\.?\s+\S`)

// Two-segment numbers are ambiguous ("1.2 billion dollars of revenue...");
// only short texts are trusted as headings. Three or more segments are
// unambiguous and promoted regardless of length.
const twoSegmentMaxLen = 120

// placeholderLevel marks heading candidates whose depth has not been
// resolved yet. ResolveHeadingLevels assigns the final value.
const placeholderLevel = 2

// PromoteNumberedParagraphs rescues paragraphs that carry multi-level
// section numbering but were not labeled as headings upstream.
func PromoteNumberedParagraphs(elements []ir.Element) []ir.Element {
	result := make([]ir.Element, 0, len(elements))
	for _, el := range elements {
		p, ok := el.(*ir.ParagraphBlock)
		if !ok {
			result = append(result, el)
			continue
		}
		h := promoteNumbered(p.Text, p.Runs, p.Page, 0.90, 0.70, "promoted")
		if h == nil {
			result = append(result, el)
			continue
		}
		result = append(result, h)
	}
	return result
}

// PromoteNumberedListItems applies the same rescue to pending list items:
// numbered sections like "8.1.2 Open the panel" are often misread as
// enumerated list entries.
func PromoteNumberedListItems(elements []ir.Element) []ir.Element {
	result := make([]ir.Element, 0, len(elements))
	for _, el := range elements {
		item, ok := el.(*ir.PendingListItem)
		if !ok {
			result = append(result, el)
			continue
		}
		h := promoteNumbered(item.Text, item.Runs, item.Page, 0.85, 0.65, "promoted_list_item")
		if h == nil {
			result = append(result, el)
			continue
		}
		result = append(result, h)
	}
	return result
}

func promoteNumbered(text string, runs []ir.TextRun, page int, deepConf, twoConf float64, tag string) *ir.HeadingBlock {
	m := multiLevelNumberRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	segments := strings.Count(m[1], ".") + 1
	var conf float64
	var reason string
	switch {
	case segments >= 3:
		conf = deepConf
		reason = fmt.Sprintf("%s:multi_level_%d_parts", tag, segments)
	case len(text) < twoSegmentMaxLen:
		conf = twoConf
		reason = fmt.Sprintf("%s:two_level_%d_chars", tag, len(text))
	default:
		return nil
	}

	return &ir.HeadingBlock{
		BlockID:    ir.NewID(),
		Page:       page,
		Level:      placeholderLevel,
		Text:       text,
		Runs:       runs,
		Confidence: conf,
		Reason:     reason,
	}
}
