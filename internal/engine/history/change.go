package history

import (
	"time"

	"github.com/dshills/quill/internal/engine/rope"
	"github.com/dshills/quill/internal/engine/selection"
)

// Change records how one selection edited the text.
type Change struct {
	Operation Operation
	Inverse   Operation

	// Position is the char index where Operation was applied, in the text
	// as it stood after the earlier changes of the same set.
	Position int

	SelectionBefore selection.Selection
	SelectionAfter  selection.Selection
}

// NewChange creates a change record.
func NewChange(op Operation, position int, before, after selection.Selection, inverse Operation) Change {
	return Change{
		Operation:       op,
		Inverse:         inverse,
		Position:        position,
		SelectionBefore: before,
		SelectionAfter:  after,
	}
}

// NoOpChange records a selection that did not act.
func NoOpChange(s selection.Selection) Change {
	return NewChange(NoOp(), s.Start(), s, s, NoOp())
}

// Inserted returns the text the change added.
func (c Change) Inserted() string {
	return c.Operation.inserted()
}

// Removed returns the text the change took out.
func (c Change) Removed() string {
	return c.Inverse.inserted()
}

// CharDelta returns the change in text length, in chars.
func (c Change) CharDelta() int {
	return charLen(c.Inserted()) - charLen(c.Removed())
}

// apply swaps remove for insert at pos and returns the resulting length
// delta.
func apply(text rope.Rope, pos int, remove, insert string) (rope.Rope, int) {
	n := charLen(remove)
	return text.ReplaceChars(pos, pos+n, insert), charLen(insert) - n
}

// Reapply performs the change again at its recorded position shifted by
// shift chars.
func (c Change) Reapply(text rope.Rope, shift int) (rope.Rope, int) {
	if c.Operation.IsNoOp() {
		return text, 0
	}
	return apply(text, c.Position+shift, c.Removed(), c.Inserted())
}

// Revert undoes the change at its recorded position shifted by shift
// chars.
func (c Change) Revert(text rope.Rope, shift int) (rope.Rope, int) {
	if c.Operation.IsNoOp() {
		return text, 0
	}
	return apply(text, c.Position+shift, c.Inserted(), c.Removed())
}

// ChangeSet is every change made by one request.
type ChangeSet struct {
	Changes          []Change
	SelectionsBefore selection.Selections
	SelectionsAfter  selection.Selections
	Timestamp        time.Time
}

// NewChangeSet creates a change set.
func NewChangeSet(changes []Change, before, after selection.Selections) *ChangeSet {
	return &ChangeSet{
		Changes:          changes,
		SelectionsBefore: before,
		SelectionsAfter:  after,
		Timestamp:        time.Now(),
	}
}

// IsNoOp returns true if no change in the set edited text.
func (cs *ChangeSet) IsNoOp() bool {
	for _, c := range cs.Changes {
		if !c.Operation.IsNoOp() {
			return false
		}
	}
	return true
}

// CharDelta returns the total change in text length, in chars.
func (cs *ChangeSet) CharDelta() int {
	total := 0
	for _, c := range cs.Changes {
		total += c.CharDelta()
	}
	return total
}

// Revert undoes every change in ascending order. Each change was recorded
// with the earlier changes applied, so the running shift accumulates the
// deltas of the changes already reverted.
func (cs *ChangeSet) Revert(text rope.Rope) rope.Rope {
	shift := 0
	for _, c := range cs.Changes {
		var delta int
		text, delta = c.Revert(text, shift)
		shift += delta
	}
	return text
}

// Reapply redoes every change in ascending order.
func (cs *ChangeSet) Reapply(text rope.Rope) rope.Rope {
	for _, c := range cs.Changes {
		text, _ = c.Reapply(text, 0)
	}
	return text
}

// Info summarizes a change set for display.
type Info struct {
	Changes   int
	CharDelta int
	Timestamp time.Time
}

// Info returns a summary of the change set.
func (cs *ChangeSet) Info() Info {
	return Info{Changes: len(cs.Changes), CharDelta: cs.CharDelta(), Timestamp: cs.Timestamp}
}
