// Package classify turns a flat, unreliably-labeled element stream into a
// well-formed block tree. The upstream extraction engine provides provisional
// labels only; everything structural (which elements are headings, how deep
// each heading sits, how list items nest) is inferred here from text cues.
//
// The stages are pure sequence transforms composed in a fixed order. Later
// stages depend on invariants established by earlier ones: the tree builder
// requires final levels, the resolver requires promotion to have happened,
// and so on.
package classify

import "github.com/dgallion1/docweave/internal/ir"

// Run applies the full classification pipeline to an element stream and
// returns the finished block tree. hasParts enables the document-wide level
// offset for PART/CHAPTER-structured documents.
func Run(elements []ir.Element, hasParts bool) []ir.Block {
	elements = SplitCompoundHeadings(elements)
	elements = PromoteNumberedParagraphs(elements)
	elements = PromoteNumberedListItems(elements)
	ResolveHeadingLevels(elements, hasParts)
	elements = GroupListItems(elements)
	return BuildHeadingTree(elements)
}
