package classify

import "github.com/dgallion1/docweave/internal/ir"

// BuildHeadingTree converts a fully leveled, fully grouped flat sequence
// into a tree where every heading owns the content that follows it, up to
// the next heading of equal or lower level.
//
// The stack holds the current chain of open headings. A new heading pops
// every entry at its own level or deeper, then attaches to whatever remains
// (or to the root). Content before the first heading stays at the root.
// Skipped levels nest directly; no synthetic intermediates are created.
func BuildHeadingTree(elements []ir.Element) []ir.Block {
	if len(elements) == 0 {
		return nil
	}

	var root []ir.Block
	type stackEntry struct {
		level int
		node  *ir.HeadingBlock
	}
	var stack []stackEntry

	attach := func(b ir.Block) {
		if len(stack) > 0 {
			top := stack[len(stack)-1].node
			top.Children = append(top.Children, b)
		} else {
			root = append(root, b)
		}
	}

	for _, el := range elements {
		block, ok := el.(ir.Block)
		if !ok {
			continue // pending items must be grouped before this stage
		}

		h, ok := block.(*ir.HeadingBlock)
		if !ok {
			attach(block)
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		attach(h)
		stack = append(stack, stackEntry{h.Level, h})
	}

	return root
}
