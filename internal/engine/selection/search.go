package selection

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dshills/quill/internal/engine/rope"
)

// group holds the selections that replaced one member of the input set.
type group struct {
	sels []Selection
}

// regroup flattens per-member groups into a set. The primary is the first
// selection of the group built from the old primary, else the last
// selection of the nearest earlier non-empty group, else the first.
func (ss Selections) regroup(groups []group) (Selections, bool) {
	var all []Selection
	primary := -1
	lastBefore := -1
	for i, g := range groups {
		if i == ss.primary && len(g.sels) > 0 {
			primary = len(all)
		}
		all = append(all, g.sels...)
		if i < ss.primary && len(g.sels) > 0 {
			lastBefore = len(all) - 1
		}
	}
	if len(all) == 0 {
		return ss, false
	}
	switch {
	case primary >= 0:
	case lastBefore >= 0:
		primary = lastBefore
	default:
		primary = 0
	}
	return Selections{selections: all, primary: primary}, true
}

func compileSearch(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, ErrNoSearchMatches
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSearchMatches, err)
	}
	return re, nil
}

// matchRanges returns the char ranges of the non-empty matches of re in
// the text covered by r.
func matchRanges(text rope.Rope, r Range, re *regexp.Regexp) []Range {
	end := min(r.End, text.LenChars())
	if end <= r.Start {
		return nil
	}
	s := text.Slice(r.Start, end)

	var out []Range
	for _, m := range re.FindAllStringIndex(s, -1) {
		if m[0] == m[1] {
			continue
		}
		start := r.Start + utf8.RuneCountInString(s[:m[0]])
		out = append(out, Range{Start: start, End: start + utf8.RuneCountInString(s[m[0]:m[1]])})
	}
	return out
}

// Search replaces every member with one selection per regex match inside
// it. Members without a match disappear.
func (ss Selections) Search(text rope.Rope, pattern string) (Selections, error) {
	re, err := compileSearch(pattern)
	if err != nil {
		return ss, err
	}

	groups := make([]group, len(ss.selections))
	for i, s := range ss.selections {
		for _, m := range matchRanges(text, s.rng, re) {
			groups[i].sels = append(groups[i].sels, New(m, Forward))
		}
	}

	out, ok := ss.regroup(groups)
	if !ok {
		return ss, ErrNoSearchMatches
	}
	return out, nil
}

// Split replaces every member with the pieces between its regex matches.
// A member without a match is kept as it is.
func (ss Selections) Split(text rope.Rope, pattern string) (Selections, error) {
	re, err := compileSearch(pattern)
	if err != nil {
		return ss, err
	}

	groups := make([]group, len(ss.selections))
	matched := false
	for i, s := range ss.selections {
		matches := matchRanges(text, s.rng, re)
		if len(matches) == 0 {
			groups[i].sels = []Selection{s}
			continue
		}
		matched = true

		pos := s.rng.Start
		end := min(s.rng.End, text.LenChars())
		for _, m := range matches {
			if m.Start > pos {
				groups[i].sels = append(groups[i].sels, New(Range{Start: pos, End: m.Start}, Forward))
			}
			pos = m.End
		}
		if end > pos {
			groups[i].sels = append(groups[i].sels, New(Range{Start: pos, End: end}, Forward))
		}
	}

	if !matched {
		return ss, ErrNoSearchMatches
	}
	out, ok := ss.regroup(groups)
	if !ok {
		return ss, ErrNoSearchMatches
	}
	if out.Equal(ss) {
		return ss, ErrResultsInSameState
	}
	return out, nil
}

// Surround replaces every member with two single-grapheme selections: one
// on the first grapheme of the range and one on the grapheme just after it.
// Text is not changed; the selections mark where surrounding input goes.
func (ss Selections) Surround(text rope.Rope, semantics CursorSemantics) (Selections, error) {
	groups := make([]group, len(ss.selections))
	for i, s := range ss.selections {
		groups[i].sels = []Selection{
			surroundCell(text, s.rng.Start, semantics),
			surroundCell(text, s.rng.End, semantics),
		}
	}

	out, _ := ss.regroup(groups)
	// Neighbours may put a cell on the same grapheme.
	out = out.sortAndMerge()

	if out.Equal(ss) {
		return ss, ErrResultsInSameState
	}
	return out, nil
}

// surroundCell returns the cell at idx. Indices past the text land on the
// end-of-document cell.
func surroundCell(text rope.Rope, idx int, semantics CursorSemantics) Selection {
	if idx >= text.LenChars() {
		idx = text.LenChars()
		if semantics == Bar {
			return New(Range{Start: idx, End: idx}, Forward)
		}
	}
	return New(Range{Start: idx, End: cellEnd(text, idx)}, Forward)
}
