package selection

import (
	"github.com/dshills/quill/internal/engine/rope"
	"github.com/dshills/quill/internal/engine/textutil"
)

var closerOf = map[rune]rune{'(': ')', '[': ']', '{': '}', '<': '>'}

var openerOf = map[rune]rune{')': '(', ']': '[', '}': '{', '>': '<'}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}

// NearestSurroundingPair finds the closest bracket or quote pair enclosing
// the start of the selection and returns single-grapheme selections over
// the opening and closing characters. It returns nil if none encloses it.
//
// Brackets nest by kind. A quote opens a pair when an even number of the
// same quote precede it on its line.
func (s Selection) NearestSurroundingPair(text rope.Rope) []Selection {
	n := text.LenChars()
	start := min(s.rng.Start, n-1)
	if start < 0 {
		return nil
	}

	// A cursor on a closing bracket belongs to the pair that bracket closes.
	if r, _ := text.CharAt(start); openerOf[r] != 0 {
		if open, ok := scanForOpener(text, start-1, openerOf[r], r); ok {
			return pairSelections(text, open, start)
		}
	}

	depth := map[rune]int{}
	for i := start; i >= 0; i-- {
		r, _ := text.CharAt(i)
		switch {
		case openerOf[r] != 0 && i != start:
			depth[openerOf[r]]++
		case closerOf[r] != 0:
			if depth[r] > 0 {
				depth[r]--
				continue
			}
			if end, ok := scanForCloser(text, i+1, r, closerOf[r]); ok {
				return pairSelections(text, i, end)
			}
		case isQuote(r):
			if !opensQuote(text, i, r) {
				continue
			}
			if end, ok := nextQuoteOnLine(text, i+1, r); ok && end >= start {
				return pairSelections(text, i, end)
			}
		}
	}
	return nil
}

// scanForOpener walks left from idx for the opener matching a closer,
// skipping nested pairs of the same kind.
func scanForOpener(text rope.Rope, idx int, open, close rune) (int, bool) {
	depth := 0
	for i := idx; i >= 0; i-- {
		r, _ := text.CharAt(i)
		switch r {
		case close:
			depth++
		case open:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// scanForCloser walks right from idx for the closer matching an opener,
// skipping nested pairs of the same kind.
func scanForCloser(text rope.Rope, idx int, open, close rune) (int, bool) {
	depth := 0
	n := text.LenChars()
	for i := idx; i < n; i++ {
		r, _ := text.CharAt(i)
		switch r {
		case open:
			depth++
		case close:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// opensQuote reports whether the quote at idx opens a pair on its line.
func opensQuote(text rope.Rope, idx int, quote rune) bool {
	line := text.CharToLine(idx)
	count := 0
	for _, r := range text.Slice(text.LineToChar(line), idx) {
		if r == quote {
			count++
		}
	}
	return count%2 == 0
}

func nextQuoteOnLine(text rope.Rope, idx int, quote rune) (int, bool) {
	line := text.CharToLine(idx)
	end := text.LineToChar(line) + textutil.LineWidth(text, line, false)
	for i := idx; i < end; i++ {
		if r, _ := text.CharAt(i); r == quote {
			return i, true
		}
	}
	return 0, false
}

func pairSelections(text rope.Rope, open, close int) []Selection {
	return []Selection{
		New(Range{Start: open, End: textutil.NextGrapheme(text, open)}, Forward),
		New(Range{Start: close, End: textutil.NextGrapheme(text, close)}, Forward),
	}
}
