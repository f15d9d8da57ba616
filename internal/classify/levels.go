package classify

import (
	"fmt"

	"github.com/dgallion1/docweave/internal/ir"
)

// levelState is the accumulator threaded through the resolver pass.
type levelState struct {
	lastLevel        int
	firstHeadingSeen bool
}

// ResolveHeadingLevels assigns a final 1..9 level to every heading candidate
// in a single left-to-right pass, mutating the candidates in place. Priority:
//
//  1. top-level structural markers (PART, APPENDIX, ...) → level 1
//  2. section numbering → segment count, plus the document offset when
//     hasParts is set
//  3. the first heading in the document → level 1 (treated as the title)
//  4. anything else inherits the previous heading's level
//
// Non-heading elements are passed over untouched. The pass depends only on
// sequence order and text, so resolving an already-resolved sequence again
// yields identical levels.
func ResolveHeadingLevels(elements []ir.Element, hasParts bool) {
	offset := 0
	if hasParts {
		offset = 1
	}

	state := levelState{lastLevel: placeholderLevel}
	for _, el := range elements {
		if h, ok := el.(*ir.HeadingBlock); ok {
			state = resolveOne(h, state, offset)
		}
	}
}

func resolveOne(h *ir.HeadingBlock, state levelState, offset int) levelState {
	var reason string
	if IsLevel1Structural(h.Text) {
		h.Level = 1
		if h.Confidence < 0.95 {
			h.Confidence = 0.95
		}
		reason = "structural_marker"
	} else if n, ok := NumberingLevel(h.Text); ok {
		h.Level = min(n+offset, maxHeadingLevel)
		reason = fmt.Sprintf("numbering:%d+offset_%d", n, offset)
	} else if !state.firstHeadingSeen {
		h.Level = 1
		if h.Confidence > 0.80 {
			h.Confidence = 0.80
		}
		reason = "first_heading_as_title"
	} else {
		h.Level = state.lastLevel
		if h.Confidence > 0.50 {
			h.Confidence = 0.50
		}
		reason = fmt.Sprintf("inherited_%d", state.lastLevel)
	}

	h.AddReason("level:" + reason)
	return levelState{lastLevel: h.Level, firstHeadingSeen: true}
}
