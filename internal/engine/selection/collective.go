package selection

import (
	"github.com/dshills/quill/internal/engine/rope"
	"github.com/dshills/quill/internal/engine/textutil"
)

// Func is a per-selection primitive.
type Func func(Selection) (Selection, error)

// MovePotentiallyOverlapping applies f to every member and merges any
// selections that end up colliding. Members for which f fails are kept
// as they were; only if f fails for all of them is the first error
// returned.
func (ss Selections) MovePotentiallyOverlapping(f Func) (Selections, error) {
	out := ss.Clone()
	var firstErr error
	failures := 0
	for i, s := range ss.selections {
		next, err := f(s)
		if err != nil {
			failures++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out.selections[i] = next
	}
	if failures == len(ss.selections) {
		return ss, firstErr
	}
	return out.sortAndMerge(), nil
}

// MoveNonOverlapping applies f to every member where the result cannot
// collide with a neighbour, such as collapsing or flipping. At least one
// member must succeed and the set must change.
func (ss Selections) MoveNonOverlapping(f Func) (Selections, error) {
	out := ss.Clone()
	succeeded := false
	var firstErr error
	for i, s := range ss.selections {
		next, err := f(s)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out.selections[i] = next
		succeeded = true
	}
	if !succeeded {
		return ss, firstErr
	}
	if out.Equal(ss) {
		return ss, ErrResultsInSameState
	}
	return out, nil
}

// MoveClearingNonPrimary drops every member but the primary and applies f
// to it. Dropping members counts as a change, so f may fail when more than
// one selection existed.
func (ss Selections) MoveClearingNonPrimary(f Func) (Selections, error) {
	primary := ss.Primary()
	next, err := f(primary)
	if err != nil {
		if len(ss.selections) == 1 {
			return ss, err
		}
		next = primary
	}
	return NewSelections(next), nil
}

// ClearNonPrimary keeps only the primary selection.
func (ss Selections) ClearNonPrimary() (Selections, error) {
	if len(ss.selections) == 1 {
		return ss, ErrSingleSelection
	}
	return NewSelections(ss.Primary()), nil
}

// IncrementPrimary makes the next selection primary, wrapping around.
func (ss Selections) IncrementPrimary() (Selections, error) {
	if len(ss.selections) == 1 {
		return ss, ErrSingleSelection
	}
	out := ss.Clone()
	out.primary = (ss.primary + 1) % len(ss.selections)
	return out, nil
}

// DecrementPrimary makes the previous selection primary, wrapping around.
func (ss Selections) DecrementPrimary() (Selections, error) {
	if len(ss.selections) == 1 {
		return ss, ErrSingleSelection
	}
	out := ss.Clone()
	out.primary = (ss.primary - 1 + len(ss.selections)) % len(ss.selections)
	return out, nil
}

// RemovePrimary drops the primary selection. The selection that took its
// index becomes primary, or the first one if the last was removed.
func (ss Selections) RemovePrimary() (Selections, error) {
	if len(ss.selections) == 1 {
		return ss, ErrSingleSelection
	}
	out := ss.Clone()
	out.selections = append(out.selections[:ss.primary], out.selections[ss.primary+1:]...)
	if out.primary >= len(out.selections) {
		out.primary = 0
	}
	return out, nil
}

// spansMultipleLines reports whether any member covers more than one line.
func (ss Selections) spansMultipleLines(text rope.Rope) bool {
	for _, s := range ss.selections {
		last := max(s.rng.Start, min(s.rng.End-1, text.LenChars()))
		if text.CharToLine(s.rng.Start) != text.CharToLine(last) {
			return true
		}
	}
	return false
}

// projectOntoLine copies s onto another line at the same columns,
// clipping the range to that line's text.
func projectOntoLine(text rope.Rope, s Selection, line int, semantics CursorSemantics) Selection {
	startCol := textutil.Column(text, s.rng.Start)
	width := textutil.GraphemeCount(text.Slice(s.rng.Start, min(s.rng.End, text.LenChars())))

	start := textutil.IndexAtColumn(text, line, startCol)
	end := textutil.IndexAtColumn(text, line, startCol+width)
	if semantics == Block && end <= start {
		end = cellEnd(text, start)
	}
	return New(Range{Start: start, End: end}, s.dir)
}

// AddSelectionAbove adds a selection on the line above the topmost member,
// at the same columns. The primary does not change.
func (ss Selections) AddSelectionAbove(text rope.Rope, semantics CursorSemantics) (Selections, error) {
	if ss.spansMultipleLines(text) {
		return ss, ErrSpansMultipleLines
	}
	top := ss.First()
	line := text.CharToLine(top.rng.Start)
	if line == 0 {
		return ss, ErrCannotAddSelectionAbove
	}

	added := projectOntoLine(text, top, line-1, semantics)
	out := Selections{
		selections: append([]Selection{added}, ss.selections...),
		primary:    ss.primary + 1,
	}
	return out.sortAndMerge(), nil
}

// AddSelectionBelow adds a selection on the line below the bottommost
// member, at the same columns. The primary does not change.
func (ss Selections) AddSelectionBelow(text rope.Rope, semantics CursorSemantics) (Selections, error) {
	if ss.spansMultipleLines(text) {
		return ss, ErrSpansMultipleLines
	}
	bottom := ss.Last()
	line := text.CharToLine(bottom.rng.Start)
	if line >= text.LenLines()-1 {
		return ss, ErrCannotAddSelectionBelow
	}

	added := projectOntoLine(text, bottom, line+1, semantics)
	out := ss.Clone()
	out.selections = append(out.selections, added)
	return out.sortAndMerge(), nil
}
