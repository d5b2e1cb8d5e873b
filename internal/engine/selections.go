package engine

import (
	"errors"

	"github.com/dshills/quill/internal/engine/selection"
)

// set swaps in a new selection set produced by a collective operation.
func (d *Document) set(next selection.Selections, err error) error {
	if err != nil {
		return selectionsErr(err)
	}
	if err := next.Validate(d.text, d.semantics); err != nil {
		return selectionsErr(err)
	}
	d.selections = next
	return nil
}

// SelectLine selects the whole line under every selection. It fails if any
// selection covers more than one line.
func (d *Document) SelectLine() error {
	spans := false
	next, err := d.selections.MovePotentiallyOverlapping(func(s selection.Selection) (selection.Selection, error) {
		out, err := s.SelectLine(d.text, d.semantics)
		if errors.Is(err, selection.ErrSpansMultipleLines) {
			spans = true
		}
		return out, err
	})
	if spans {
		return selectionsErr(selection.ErrSpansMultipleLines)
	}
	return d.set(next, err)
}

// SelectAll replaces every selection with one covering the whole text.
func (d *Document) SelectAll() error {
	return d.movePrimary(selection.Selection.SelectAll)
}

// FlipDirection swaps cursor and anchor of every extended selection.
func (d *Document) FlipDirection() error {
	return d.set(d.selections.MoveNonOverlapping(d.bind(selection.Selection.FlipDirection)))
}

// CollapseSelectionToCursor shrinks every extended selection to its cursor.
func (d *Document) CollapseSelectionToCursor() error {
	return d.set(d.selections.MoveNonOverlapping(d.bind(selection.Selection.CollapseToCursor)))
}

// ClearNonPrimarySelections keeps only the primary selection.
func (d *Document) ClearNonPrimarySelections() error {
	return d.set(d.selections.ClearNonPrimary())
}

// AddSelectionAbove adds a selection on the line above the topmost one.
func (d *Document) AddSelectionAbove() error {
	return d.set(d.selections.AddSelectionAbove(d.text, d.semantics))
}

// AddSelectionBelow adds a selection on the line below the bottommost one.
func (d *Document) AddSelectionBelow() error {
	return d.set(d.selections.AddSelectionBelow(d.text, d.semantics))
}

// IncrementPrimarySelection makes the next selection primary.
func (d *Document) IncrementPrimarySelection() error {
	return d.set(d.selections.IncrementPrimary())
}

// DecrementPrimarySelection makes the previous selection primary.
func (d *Document) DecrementPrimarySelection() error {
	return d.set(d.selections.DecrementPrimary())
}

// RemovePrimarySelection drops the primary selection.
func (d *Document) RemovePrimarySelection() error {
	return d.set(d.selections.RemovePrimary())
}

// NearestSurroundingPair replaces every selection with cursors on the
// bracket or quote pair enclosing it. Selections with no enclosing pair
// are dropped.
func (d *Document) NearestSurroundingPair() error {
	var all []selection.Selection
	primary := 0
	for i, s := range d.selections.All() {
		pairs := s.NearestSurroundingPair(d.text)
		if i == d.selections.PrimaryIndex() && len(pairs) > 0 {
			primary = len(all)
		}
		all = append(all, pairs...)
	}
	if len(all) == 0 {
		return selectionsErr(selection.ErrResultsInSameState)
	}

	next, err := selection.FromSlice(all, primary)
	if err == nil && next.Equal(d.selections) {
		err = selection.ErrResultsInSameState
	}
	return d.set(next, err)
}

// Surround replaces every selection with cursors just before and just
// after it, leaving the text alone.
func (d *Document) Surround() error {
	return d.set(d.selections.Surround(d.text, d.semantics))
}

// ============================================================================
// Incremental search
// ============================================================================

// EnterSearch remembers the current selections as the base that every
// search or split keystroke refines.
func (d *Document) EnterSearch() {
	base := d.selections
	d.searchBase = &base
}

func (d *Document) searchFrom() selection.Selections {
	if d.searchBase != nil {
		return *d.searchBase
	}
	return d.selections
}

// searchWith runs op over the search base. On failure the selections go
// back to the base so the client sees where the search started.
func (d *Document) searchWith(op func(selection.Selections) (selection.Selections, error)) error {
	base := d.searchFrom()
	next, err := op(base)
	if err != nil {
		if d.searchBase != nil {
			d.selections = base
		}
		return selectionsErr(err)
	}
	return d.set(next, nil)
}

// IncrementalSearch selects every match of pattern inside the selections
// the search started from.
func (d *Document) IncrementalSearch(pattern string) error {
	return d.searchWith(func(base selection.Selections) (selection.Selections, error) {
		return base.Search(d.text, pattern)
	})
}

// IncrementalSplit splits the selections the search started from around
// every match of pattern.
func (d *Document) IncrementalSplit(pattern string) error {
	return d.searchWith(func(base selection.Selections) (selection.Selections, error) {
		return base.Split(d.text, pattern)
	})
}

// AcceptSearch keeps the current selections and leaves search.
func (d *Document) AcceptSearch() error {
	if d.searchBase == nil {
		return ErrInvalidInput
	}
	d.searchBase = nil
	return nil
}

// CancelSearch restores the selections from before the search.
func (d *Document) CancelSearch() error {
	if d.searchBase == nil {
		return ErrInvalidInput
	}
	d.selections = *d.searchBase
	d.searchBase = nil
	return nil
}
