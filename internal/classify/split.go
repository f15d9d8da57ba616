package classify

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docweave/internal/ir"
)

// Extraction engines sometimes merge a heading with the text that follows it,
// joined by a middle dot or bullet glyph.
var compoundSepRe = regexp.MustCompile(`\s+[·•]\s+`)

// SplitCompoundHeadings splits heading candidates like
// "PAY APPLICATIONS · Managed in Aconex" into a heading and a trailing
// paragraph on the same page. Only the first separator is considered.
func SplitCompoundHeadings(elements []ir.Element) []ir.Element {
	result := make([]ir.Element, 0, len(elements))
	for _, el := range elements {
		h, ok := el.(*ir.HeadingBlock)
		if !ok {
			result = append(result, el)
			continue
		}
		loc := compoundSepRe.FindStringIndex(h.Text)
		if loc == nil {
			result = append(result, el)
			continue
		}

		tail := strings.TrimSpace(h.Text[loc[1]:])
		h.Text = strings.TrimSpace(h.Text[:loc[0]])
		h.Runs = nil // stale: they spanned the unsplit text
		if h.Confidence > 0.75 {
			h.Confidence = 0.75
		}
		h.AddReason("compound_split")

		result = append(result, h, &ir.ParagraphBlock{
			BlockID: ir.NewID(),
			Page:    h.Page,
			Text:    tail,
		})
	}
	return result
}
