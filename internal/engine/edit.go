package engine

import (
	"strings"

	"github.com/dshills/quill/internal/engine/history"
	"github.com/dshills/quill/internal/engine/rope"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/engine/textutil"
)

// edit describes what one selection does to the text: replace the chars
// [start, end) with insert and leave a collapsed cursor at cursor, all in
// the coordinates of the text before the edit except cursor, which is in
// the text after it.
type edit struct {
	start, end int
	insert     string
	cursor     int
}

// planner decides the edit for one selection. ok is false if the
// selection cannot act, for example backspace at the start of the text.
type planner func(text rope.Rope, s selection.Selection) (e edit, ok bool)

// applyEdits runs plan for every selection in ascending order and records
// the result as one change set. After each edit the later selections are
// shifted by the change in length. If no selection acts the document is
// left alone and ErrSelectionAtDocBounds is returned.
func (d *Document) applyEdits(plan planner) error {
	before := d.selections
	sels := d.selections.Clone()
	text := d.text
	changes := make([]history.Change, 0, sels.Count())
	acted := false

	for i := 0; i < sels.Count(); i++ {
		s := sels.Nth(i)
		e, ok := plan(text, s)
		if !ok {
			changes = append(changes, history.NoOpChange(s))
			continue
		}

		var change history.Change
		text, change = d.apply(text, s, e)
		sels.Set(i, change.SelectionAfter)
		if delta := change.CharDelta(); delta > 0 {
			sels.ShiftSubsequentForward(i, delta)
		} else if delta < 0 {
			sels.ShiftSubsequentBackward(i, -delta)
		}
		changes = append(changes, change)
		acted = true
	}

	if !acted {
		return ErrSelectionAtDocBounds
	}

	d.text = text
	d.selections = sels.SortAndMerge()
	d.searchBase = nil
	d.history.Push(history.NewChangeSet(changes, before, d.selections))
	return nil
}

// apply performs one edit and builds its change record.
func (d *Document) apply(text rope.Rope, s selection.Selection, e edit) (rope.Rope, history.Change) {
	removed := text.Slice(e.start, e.end)
	text = text.ReplaceChars(e.start, e.end, e.insert)

	after := selection.Cursor(text, e.cursor, d.semantics).
		WithStoredLinePosition(textutil.Column(text, e.cursor))

	var op, inverse history.Operation
	switch {
	case removed == "":
		op, inverse = history.Insert(e.insert), history.Delete()
	case e.insert == "":
		op, inverse = history.Delete(), history.Insert(removed)
	default:
		op, inverse = history.Replace(e.insert), history.Replace(removed)
	}
	return text, history.NewChange(op, e.start, s, after, inverse)
}

// content returns the char range a selection covers, clipped to the text.
func content(text rope.Rope, s selection.Selection) (int, int) {
	return s.Start(), min(s.End(), text.LenChars())
}

// replacing plans an edit that swaps the selection's content for insert,
// or inserts at the cursor when the selection is not extended.
func (d *Document) replacing(text rope.Rope, s selection.Selection, insert string) edit {
	if s.IsExtended(text, d.semantics) {
		start, end := content(text, s)
		return edit{start: start, end: end, insert: insert, cursor: start + textutil.RuneLen(insert)}
	}
	c := s.Cursor(text, d.semantics)
	return edit{start: c, end: c, insert: insert, cursor: c + textutil.RuneLen(insert)}
}

// ============================================================================
// Insertion
// ============================================================================

// InsertString inserts s at every cursor, replacing extended selections.
// A lone "\t" inserts spaces up to the next tab stop unless hard tabs are
// on.
func (d *Document) InsertString(s string) error {
	if s == "" {
		return ErrInvalidInput
	}
	if s == "\t" && !d.useHardTab {
		return d.applyEdits(func(text rope.Rope, sel selection.Selection) (edit, bool) {
			at := sel.Start()
			if !sel.IsExtended(text, d.semantics) {
				at = sel.Cursor(text, d.semantics)
			}
			n := textutil.TabDistance(textutil.Column(text, at), d.tabWidth)
			return d.replacing(text, sel, strings.Repeat(" ", n)), true
		})
	}
	return d.insertRaw(s)
}

// InsertNewline inserts a line break at every cursor.
func (d *Document) InsertNewline() error {
	return d.insertRaw("\n")
}

// InsertTab inserts a tab at every cursor.
func (d *Document) InsertTab() error {
	return d.InsertString("\t")
}

func (d *Document) insertRaw(s string) error {
	return d.applyEdits(func(text rope.Rope, sel selection.Selection) (edit, bool) {
		return d.replacing(text, sel, s), true
	})
}

// ============================================================================
// Deletion
// ============================================================================

// deleting plans removal of an extended selection's content.
func deleting(text rope.Rope, s selection.Selection) edit {
	start, end := content(text, s)
	return edit{start: start, end: end, cursor: start}
}

// Delete removes every extended selection's content, or the grapheme at
// every cursor.
func (d *Document) Delete() error {
	return d.applyEdits(func(text rope.Rope, s selection.Selection) (edit, bool) {
		if s.IsExtended(text, d.semantics) {
			return deleting(text, s), true
		}
		c := s.Cursor(text, d.semantics)
		if c >= text.LenChars() {
			return edit{}, false
		}
		return edit{start: c, end: textutil.NextGrapheme(text, c), cursor: c}, true
	})
}

// Backspace removes every extended selection's content, or the grapheme
// before every cursor. At the start of a line it joins the line to the one
// above. With soft tabs, a cursor on a tab stop preceded by a full tab of
// spaces removes the whole tab.
func (d *Document) Backspace() error {
	return d.applyEdits(func(text rope.Rope, s selection.Selection) (edit, bool) {
		if s.IsExtended(text, d.semantics) {
			return deleting(text, s), true
		}
		c := s.Cursor(text, d.semantics)
		if c == 0 {
			return edit{}, false
		}
		if !d.useHardTab && d.isSoftTabBefore(text, c) {
			return edit{start: c - d.tabWidth, end: c, cursor: c - d.tabWidth}, true
		}
		prev := textutil.PreviousGrapheme(text, c)
		return edit{start: prev, end: c, cursor: prev}, true
	})
}

// isSoftTabBefore reports whether the cursor sits on a tab stop with a
// full tab width of spaces before it on the same line.
func (d *Document) isSoftTabBefore(text rope.Rope, c int) bool {
	col := textutil.Column(text, c)
	if col < d.tabWidth || col%d.tabWidth != 0 {
		return false
	}
	run := text.Slice(c-d.tabWidth, c)
	return run == strings.Repeat(" ", d.tabWidth)
}

// ============================================================================
// Clipboard
// ============================================================================

// selectedText returns the content of the only selection.
func (d *Document) selectedText() (string, error) {
	if d.selections.Count() != 1 {
		return "", selectionsErr(selection.ErrMultipleSelections)
	}
	start, end := content(d.text, d.selections.Primary())
	if start >= end {
		return "", ErrInvalidInput
	}
	return d.text.Slice(start, end), nil
}

// Copy puts the content of the only selection on the clipboard.
func (d *Document) Copy() error {
	s, err := d.selectedText()
	if err != nil {
		return err
	}
	d.clipboard = s
	return nil
}

// Cut copies the only selection to the clipboard and deletes it.
func (d *Document) Cut() error {
	s, err := d.selectedText()
	if err != nil {
		return err
	}
	d.clipboard = s
	return d.applyEdits(func(text rope.Rope, sel selection.Selection) (edit, bool) {
		return deleting(text, sel), true
	})
}

// Paste inserts the clipboard at every cursor.
func (d *Document) Paste() error {
	if d.clipboard == "" {
		return ErrInvalidInput
	}
	return d.insertRaw(d.clipboard)
}

// SetClipboard replaces the clipboard contents.
func (d *Document) SetClipboard(s string) {
	d.clipboard = s
}

// ============================================================================
// Surrounding pairs
// ============================================================================

// AddSurroundingPair wraps every selection's content in leading and
// trailing. The cursor lands just after the trailing glyph. A selection at
// the end of the text cannot be wrapped.
func (d *Document) AddSurroundingPair(leading, trailing string) error {
	if leading == "" && trailing == "" {
		return ErrInvalidInput
	}
	return d.applyEdits(func(text rope.Rope, s selection.Selection) (edit, bool) {
		start, end := content(text, s)
		if start >= text.LenChars() {
			return edit{}, false
		}
		wrapped := leading + text.Slice(start, end) + trailing
		return edit{start: start, end: end, insert: wrapped, cursor: start + textutil.RuneLen(wrapped)}, true
	})
}

// ============================================================================
// Undo / Redo
// ============================================================================

// Undo reverts the last change set and restores the selections from
// before it.
func (d *Document) Undo() error {
	cs, err := d.history.Undo()
	if err != nil {
		return ErrNoChangesToUndo
	}
	d.text = cs.Revert(d.text)
	d.selections = cs.SelectionsBefore
	d.searchBase = nil
	return nil
}

// Redo reapplies the last undone change set and restores the selections
// from after it.
func (d *Document) Redo() error {
	cs, err := d.history.Redo()
	if err != nil {
		return ErrNoChangesToRedo
	}
	d.text = cs.Reapply(d.text)
	d.selections = cs.SelectionsAfter
	d.searchBase = nil
	return nil
}
