package engine

import (
	"github.com/dshills/quill/internal/engine/rope"
	"github.com/dshills/quill/internal/engine/selection"
)

// primitive is the shape of the per-selection motion methods, taken as
// method expressions such as selection.Selection.MoveLeft.
type primitive func(selection.Selection, rope.Rope, selection.CursorSemantics) (selection.Selection, error)

func (d *Document) bind(p primitive) selection.Func {
	return func(s selection.Selection) (selection.Selection, error) {
		return p(s, d.text, d.semantics)
	}
}

// moveAll applies p to every selection; colliding results merge.
func (d *Document) moveAll(p primitive) error {
	return d.set(d.selections.MovePotentiallyOverlapping(d.bind(p)))
}

// movePrimary drops every selection but the primary and applies p to it.
func (d *Document) movePrimary(p primitive) error {
	return d.set(d.selections.MoveClearingNonPrimary(d.bind(p)))
}

// ============================================================================
// Motion
// ============================================================================

// MoveCursorLeft moves every cursor one grapheme left.
func (d *Document) MoveCursorLeft() error {
	return d.moveAll(selection.Selection.MoveLeft)
}

// MoveCursorRight moves every cursor one grapheme right.
func (d *Document) MoveCursorRight() error {
	return d.moveAll(selection.Selection.MoveRight)
}

// MoveCursorUp moves every cursor one line up, keeping its stored column.
func (d *Document) MoveCursorUp() error {
	return d.moveAll(selection.Selection.MoveUp)
}

// MoveCursorDown moves every cursor one line down, keeping its stored
// column.
func (d *Document) MoveCursorDown() error {
	return d.moveAll(selection.Selection.MoveDown)
}

// MoveCursorLineStart moves every cursor to the start of its line.
func (d *Document) MoveCursorLineStart() error {
	return d.moveAll(selection.Selection.MoveLineStart)
}

// MoveCursorLineTextStart moves every cursor to the first non-whitespace
// grapheme of its line.
func (d *Document) MoveCursorLineTextStart() error {
	return d.moveAll(selection.Selection.MoveLineTextStart)
}

// MoveCursorLineEnd moves every cursor to the end of its line's text.
func (d *Document) MoveCursorLineEnd() error {
	return d.moveAll(selection.Selection.MoveLineEnd)
}

// MoveCursorHome toggles every cursor between line start and text start.
func (d *Document) MoveCursorHome() error {
	return d.moveAll(selection.Selection.MoveHome)
}

// MoveCursorDocStart leaves a single cursor at the start of the text.
func (d *Document) MoveCursorDocStart() error {
	return d.movePrimary(selection.Selection.MoveDocStart)
}

// MoveCursorDocEnd leaves a single cursor at the end of the text.
func (d *Document) MoveCursorDocEnd() error {
	return d.movePrimary(selection.Selection.MoveDocEnd)
}

// MoveCursorWordBoundaryForward moves every cursor to the next word
// boundary.
func (d *Document) MoveCursorWordBoundaryForward() error {
	return d.moveAll(selection.Selection.MoveWordBoundaryForward)
}

// MoveCursorWordBoundaryBackward moves every cursor to the previous word
// boundary.
func (d *Document) MoveCursorWordBoundaryBackward() error {
	return d.moveAll(selection.Selection.MoveWordBoundaryBackward)
}

// MoveCursorPageUp moves every cursor up by one view height less a line.
func (d *Document) MoveCursorPageUp() error {
	return d.moveAll(func(s selection.Selection, text rope.Rope, sem selection.CursorSemantics) (selection.Selection, error) {
		return s.MovePageUp(text, d.view.Height, sem)
	})
}

// MoveCursorPageDown moves every cursor down by one view height less a
// line.
func (d *Document) MoveCursorPageDown() error {
	return d.moveAll(func(s selection.Selection, text rope.Rope, sem selection.CursorSemantics) (selection.Selection, error) {
		return s.MovePageDown(text, d.view.Height, sem)
	})
}

// GoTo leaves a single cursor at the start of the 0-based line.
func (d *Document) GoTo(line int) error {
	return d.movePrimary(func(s selection.Selection, text rope.Rope, sem selection.CursorSemantics) (selection.Selection, error) {
		return s.SetFromLineNumber(text, line, selection.Move, sem)
	})
}

// ============================================================================
// Extension
// ============================================================================

// ExtendSelectionLeft extends every selection one grapheme left.
func (d *Document) ExtendSelectionLeft() error {
	return d.moveAll(selection.Selection.ExtendLeft)
}

// ExtendSelectionRight extends every selection one grapheme right.
func (d *Document) ExtendSelectionRight() error {
	return d.moveAll(selection.Selection.ExtendRight)
}

// ExtendSelectionUp extends every selection one line up.
func (d *Document) ExtendSelectionUp() error {
	return d.moveAll(selection.Selection.ExtendUp)
}

// ExtendSelectionDown extends every selection one line down.
func (d *Document) ExtendSelectionDown() error {
	return d.moveAll(selection.Selection.ExtendDown)
}

// ExtendSelectionLineStart extends every selection to the start of its
// line.
func (d *Document) ExtendSelectionLineStart() error {
	return d.moveAll(selection.Selection.ExtendLineStart)
}

// ExtendSelectionLineTextStart extends every selection to the first
// non-whitespace grapheme of its line.
func (d *Document) ExtendSelectionLineTextStart() error {
	return d.moveAll(selection.Selection.ExtendLineTextStart)
}

// ExtendSelectionLineEnd extends every selection to the end of its line's
// text.
func (d *Document) ExtendSelectionLineEnd() error {
	return d.moveAll(selection.Selection.ExtendLineEnd)
}

// ExtendSelectionHome extends every selection, toggling between line start
// and text start.
func (d *Document) ExtendSelectionHome() error {
	return d.moveAll(selection.Selection.ExtendHome)
}

// ExtendSelectionDocStart extends every selection to the start of the text.
func (d *Document) ExtendSelectionDocStart() error {
	return d.moveAll(selection.Selection.ExtendDocStart)
}

// ExtendSelectionDocEnd extends every selection to the end of the text.
func (d *Document) ExtendSelectionDocEnd() error {
	return d.moveAll(selection.Selection.ExtendDocEnd)
}

// ExtendSelectionWordBoundaryForward extends every selection to the next
// word boundary.
func (d *Document) ExtendSelectionWordBoundaryForward() error {
	return d.moveAll(selection.Selection.ExtendWordBoundaryForward)
}

// ExtendSelectionWordBoundaryBackward extends every selection to the
// previous word boundary.
func (d *Document) ExtendSelectionWordBoundaryBackward() error {
	return d.moveAll(selection.Selection.ExtendWordBoundaryBackward)
}

// ExtendSelectionPageUp extends every selection up by one page.
func (d *Document) ExtendSelectionPageUp() error {
	return d.moveAll(func(s selection.Selection, text rope.Rope, sem selection.CursorSemantics) (selection.Selection, error) {
		return s.ExtendPageUp(text, d.view.Height, sem)
	})
}

// ExtendSelectionPageDown extends every selection down by one page.
func (d *Document) ExtendSelectionPageDown() error {
	return d.moveAll(func(s selection.Selection, text rope.Rope, sem selection.CursorSemantics) (selection.Selection, error) {
		return s.ExtendPageDown(text, d.view.Height, sem)
	})
}
