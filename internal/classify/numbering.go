package classify

import (
	"regexp"
	"strings"
)

// maxHeadingLevel caps resolved levels at Word's deepest heading style.
const maxHeadingLevel = 9

var (
	// Bare section numbers: the entire text is "2.2" or "2.2." etc.
	bareNumberRe = regexp.MustCompile(`^(\d+(?:\.\d+)+)\.?\s*$`)

	// Numbered sections: "1." or "1.2" or "1.2.3" followed by more text.
	numberedRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)(\.?\s+\S)`)

	// Qualifiers for single-segment numbers. A lone leading digit is only a
	// section number when followed by a literal dot ("1. Foo"), a sub-number
	// ("1.2"), an ALL-CAPS word ("3 QUALITY CONTROL"), or a capitalized word
	// of 5+ letters ("3 Safety Instructions"). Rejects "1 Week Lookback",
	// "2 Way valve", "12 Monkeys". Tuned against observed documents.
	singleDotSpaceRe  = regexp.MustCompile(`^\d+\.\s`)
	singleDotDigitRe  = regexp.MustCompile(`^\d+\.\d`)
	singleAllCapsRe   = regexp.MustCompile(`^\d+\s+[A-Z]{2}`)
	singleTitleWordRe = regexp.MustCompile(`^\d\s+[A-Z][a-z]{4,}`)

	// Letter-prefixed sections: "A.1 Section", "B.2.1 Sub".
	letterPrefixRe = regexp.MustCompile(`^[A-Z]\.(\d+(?:\.\d+)*)\s`)

	structuralMarkerRe = regexp.MustCompile(`(?i)^(?:PART|CHAPTER)\s+(?:[IVXLCDM]+|\d+)\b`)
	level1StructuralRe = regexp.MustCompile(`(?i)^(?:PART|CHAPTER|APPENDIX|EXHIBIT|ANNEX)\s+(?:[IVXLCDM]+|[A-Z]|\d+)\b`)
)

// NumberingLevel infers a heading depth from leading section numbering.
//
//	"1. Introduction" → 1
//	"1.2 Scope"       → 2
//	"1.2.3 Details"   → 3
//	"A.1 Section"     → 2
//	"2.2"             → 2 (bare form)
//
// Returns false for text without recognizable numbering, including phrases
// like "1 Week Lookback" and "100 items".
func NumberingLevel(text string) (int, bool) {
	if m := bareNumberRe.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		return min(segmentCount(m[1]), maxHeadingLevel), true
	}

	if m := numberedRe.FindStringSubmatch(text); m != nil {
		segments := segmentCount(m[1])
		if segments == 1 &&
			!singleDotSpaceRe.MatchString(text) &&
			!singleDotDigitRe.MatchString(text) &&
			!singleAllCapsRe.MatchString(text) &&
			!singleTitleWordRe.MatchString(text) {
			return 0, false
		}
		return min(segments, maxHeadingLevel), true
	}

	if m := letterPrefixRe.FindStringSubmatch(text); m != nil {
		return min(segmentCount(m[1])+1, maxHeadingLevel), true
	}

	return 0, false
}

func segmentCount(numbering string) int {
	return strings.Count(numbering, ".") + 1
}

// IsStructuralMarker reports whether text starts with a PART/CHAPTER marker.
// These trigger the document-wide level offset: in PART-based documents the
// numbered sections sit one level below their numbering suggests.
func IsStructuralMarker(text string) bool {
	return structuralMarkerRe.MatchString(strings.TrimSpace(text))
}

// IsLevel1Structural reports whether text starts with any top-level division
// marker (PART, CHAPTER, APPENDIX, EXHIBIT, ANNEX). These are always level 1
// regardless of the offset.
func IsLevel1Structural(text string) bool {
	return level1StructuralRe.MatchString(strings.TrimSpace(text))
}
