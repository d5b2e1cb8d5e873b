// Package textutil holds the grapheme, line and word helpers that every
// selection primitive uses to step through a rope.
//
// Positions are char indices into a rope. A grapheme cluster may span
// several chars ("e" + combining accent, "\r\n", flag emoji); NextGrapheme
// and PreviousGrapheme are the only helpers that advance by one visible
// character, and callers should not step by raw index arithmetic.
package textutil

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/quill/internal/engine/rope"
)

// graphemeWindow bounds how many chars are segmented around a position.
// No realistic cluster is longer.
const graphemeWindow = 128

// NextGrapheme returns the index of the grapheme boundary after idx.
// At or past the end of the text it returns text.LenChars().
func NextGrapheme(text rope.Rope, idx int) int {
	n := text.LenChars()
	if idx >= n {
		return n
	}
	idx = max(idx, 0)

	window := text.Slice(idx, min(idx+graphemeWindow, n))
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(window, -1)
	return idx + max(utf8.RuneCountInString(cluster), 1)
}

// PreviousGrapheme returns the index of the grapheme boundary before idx.
// At the start of the text it returns 0.
func PreviousGrapheme(text rope.Rope, idx int) int {
	if idx <= 0 {
		return 0
	}
	idx = min(idx, text.LenChars())

	// A line start is always a cluster boundary, so segment from there.
	start := text.LineToChar(text.CharToLine(idx - 1))
	start = max(start, idx-graphemeWindow)

	prev := start
	pos := start
	state := -1
	rest := text.Slice(start, idx)
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		prev = pos
		pos += utf8.RuneCountInString(cluster)
	}
	return prev
}

// IsGraphemeBoundary reports whether idx falls between two clusters.
func IsGraphemeBoundary(text rope.Rope, idx int) bool {
	if idx <= 0 || idx >= text.LenChars() {
		return true
	}
	return NextGrapheme(text, PreviousGrapheme(text, idx)) == idx
}

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Graphemes splits s into its grapheme clusters.
func Graphemes(s string) []string {
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// DisplayWidth returns the terminal cell width of s. Every cluster takes
// at least one cell so zero-width marks stay addressable.
func DisplayWidth(s string) int {
	width := 0
	for _, cluster := range Graphemes(s) {
		width += max(runewidth.StringWidth(cluster), 1)
	}
	return width
}
