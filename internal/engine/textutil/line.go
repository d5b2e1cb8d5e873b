package textutil

import (
	"unicode"

	"github.com/dshills/quill/internal/engine/rope"
)

// LineWidth returns the char length of a line. With includeNewline false
// the "\n" or "\r\n" terminator is excluded.
func LineWidth(text rope.Rope, line int, includeNewline bool) int {
	if includeNewline {
		return text.LineToChar(line+1) - text.LineToChar(line)
	}
	return len([]rune(text.LineText(line)))
}

// IsWhitespace reports whether r separates words.
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || unicode.IsSpace(r)
}

// FirstNonWhitespaceOffset returns the char offset of the first
// non-whitespace character of a line. ok is false when the line holds only
// whitespace.
func FirstNonWhitespaceOffset(line string) (offset int, ok bool) {
	for _, r := range line {
		if !IsWhitespace(r) {
			return offset, true
		}
		offset++
	}
	return 0, false
}

// TabDistance returns how many columns separate col from the next tab stop.
func TabDistance(col, tabWidth int) int {
	if tabWidth <= 0 {
		return 1
	}
	return tabWidth - col%tabWidth
}

// Column returns the number of grapheme clusters between the start of idx's
// line and idx.
func Column(text rope.Rope, idx int) int {
	line := text.CharToLine(idx)
	return GraphemeCount(text.Slice(text.LineToChar(line), idx))
}

// IndexAtColumn returns the char index of the given grapheme column on a
// line, clipped to the line's width without its terminator.
func IndexAtColumn(text rope.Rope, line, col int) int {
	start := text.LineToChar(line)
	end := start + LineWidth(text, line, false)
	idx := start
	for i := 0; i < col && idx < end; i++ {
		idx = NextGrapheme(text, idx)
	}
	return min(idx, end)
}

// LineTextStart returns the char index of the first non-whitespace character
// of a line, or the line start if the line is blank.
func LineTextStart(text rope.Rope, line int) int {
	start := text.LineToChar(line)
	off, ok := FirstNonWhitespaceOffset(text.LineText(line))
	if !ok {
		return start
	}
	return start + off
}
