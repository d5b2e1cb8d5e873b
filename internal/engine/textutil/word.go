package textutil

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/quill/internal/engine/rope"
)

// CharClass groups characters for word motion.
type CharClass int

const (
	ClassWhitespace CharClass = iota
	ClassWord
	ClassOther
)

// ClassOf returns the class of r. Letters, digits and '_' form words.
func ClassOf(r rune) CharClass {
	switch {
	case IsWhitespace(r):
		return ClassWhitespace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return ClassWord
	default:
		return ClassOther
	}
}

// classAt classifies the grapheme starting at idx by its base character.
func classAt(text rope.Rope, idx int) CharClass {
	r, ok := text.CharAt(idx)
	if !ok {
		return ClassWhitespace
	}
	return ClassOf(r)
}

// NextWordBoundary returns the first position after idx where the class of
// the preceding grapheme differs from the class of the following one, or the
// end of the text.
func NextWordBoundary(text rope.Rope, idx int) int {
	n := text.LenChars()
	if idx >= n {
		return n
	}
	class := classAt(text, idx)
	pos := NextGrapheme(text, idx)
	for pos < n && classAt(text, pos) == class {
		pos = NextGrapheme(text, pos)
	}
	return pos
}

// PreviousWordBoundary returns the start of the class run containing the
// grapheme before idx, or 0.
func PreviousWordBoundary(text rope.Rope, idx int) int {
	if idx <= 0 {
		return 0
	}
	pos := PreviousGrapheme(text, idx)
	class := classAt(text, pos)
	for pos > 0 {
		prev := PreviousGrapheme(text, pos)
		if classAt(text, prev) != class {
			break
		}
		pos = prev
	}
	return pos
}

// RuneLen returns the number of chars in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
