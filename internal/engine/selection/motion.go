package selection

import (
	"github.com/dshills/quill/internal/engine/rope"
	"github.com/dshills/quill/internal/engine/textutil"
)

// MoveLeft collapses onto the grapheme left of the cursor.
func (s Selection) MoveLeft(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.MoveHorizontally(text, 1, Move, Backward, semantics)
}

// MoveRight collapses onto the grapheme right of the cursor.
func (s Selection) MoveRight(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.MoveHorizontally(text, 1, Move, Forward, semantics)
}

// ExtendLeft moves the cursor one grapheme left, keeping the anchor.
func (s Selection) ExtendLeft(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.MoveHorizontally(text, 1, Extend, Backward, semantics)
}

// ExtendRight moves the cursor one grapheme right, keeping the anchor.
func (s Selection) ExtendRight(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.MoveHorizontally(text, 1, Extend, Forward, semantics)
}

// MoveUp moves one line up. The stored line position is read, not written.
func (s Selection) MoveUp(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.MoveVertically(text, 1, Move, Backward, semantics)
}

// MoveDown moves one line down.
func (s Selection) MoveDown(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.MoveVertically(text, 1, Move, Forward, semantics)
}

// ExtendUp extends one line up.
func (s Selection) ExtendUp(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.MoveVertically(text, 1, Extend, Backward, semantics)
}

// ExtendDown extends one line down.
func (s Selection) ExtendDown(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.MoveVertically(text, 1, Extend, Forward, semantics)
}

// PageAmount returns the line count of one page for a view of the given
// height.
func PageAmount(height int) int {
	return max(height-1, 1)
}

// MovePageUp moves up by one page of a view with the given height.
func (s Selection) MovePageUp(text rope.Rope, height int, semantics CursorSemantics) (Selection, error) {
	return s.MoveVertically(text, PageAmount(height), Move, Backward, semantics)
}

// MovePageDown moves down by one page.
func (s Selection) MovePageDown(text rope.Rope, height int, semantics CursorSemantics) (Selection, error) {
	return s.MoveVertically(text, PageAmount(height), Move, Forward, semantics)
}

// ExtendPageUp extends up by one page.
func (s Selection) ExtendPageUp(text rope.Rope, height int, semantics CursorSemantics) (Selection, error) {
	return s.MoveVertically(text, PageAmount(height), Extend, Backward, semantics)
}

// ExtendPageDown extends down by one page.
func (s Selection) ExtendPageDown(text rope.Rope, height int, semantics CursorSemantics) (Selection, error) {
	return s.MoveVertically(text, PageAmount(height), Extend, Forward, semantics)
}

func (s Selection) cursorLine(text rope.Rope, semantics CursorSemantics) int {
	return text.CharToLine(s.Cursor(text, semantics))
}

func lineStart(text rope.Rope, line int) int {
	return text.LineToChar(line)
}

// lineEnd returns where a line-end motion lands: after the last grapheme
// for Bar, on it for Block.
func lineEnd(text rope.Rope, line int, semantics CursorSemantics) int {
	start := text.LineToChar(line)
	end := start + textutil.LineWidth(text, line, false)
	if semantics == Block && end > start {
		return textutil.PreviousGrapheme(text, end)
	}
	return end
}

// MoveLineStart moves to the first column of the cursor's line.
func (s Selection) MoveLineStart(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, lineStart(text, s.cursorLine(text, semantics)), Move, semantics, true)
}

// ExtendLineStart extends to the first column of the cursor's line.
func (s Selection) ExtendLineStart(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, lineStart(text, s.cursorLine(text, semantics)), Extend, semantics, true)
}

// MoveLineTextStart moves to the first non-whitespace column of the line.
func (s Selection) MoveLineTextStart(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, textutil.LineTextStart(text, s.cursorLine(text, semantics)), Move, semantics, true)
}

// ExtendLineTextStart extends to the first non-whitespace column of the line.
func (s Selection) ExtendLineTextStart(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, textutil.LineTextStart(text, s.cursorLine(text, semantics)), Extend, semantics, true)
}

// MoveLineEnd moves to the end of the line's text, before its terminator.
func (s Selection) MoveLineEnd(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, lineEnd(text, s.cursorLine(text, semantics), semantics), Move, semantics, true)
}

// ExtendLineEnd extends to the end of the line's text.
func (s Selection) ExtendLineEnd(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, lineEnd(text, s.cursorLine(text, semantics), semantics), Extend, semantics, true)
}

// homeTarget toggles between the text start and the line start: a cursor
// already at the text start goes to the line start.
func (s Selection) homeTarget(text rope.Rope, semantics CursorSemantics) int {
	line := s.cursorLine(text, semantics)
	textStart := textutil.LineTextStart(text, line)
	if s.Cursor(text, semantics) == textStart {
		return lineStart(text, line)
	}
	return textStart
}

// MoveHome toggles between the line's text start and line start.
func (s Selection) MoveHome(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, s.homeTarget(text, semantics), Move, semantics, true)
}

// ExtendHome extends with the same toggle as MoveHome.
func (s Selection) ExtendHome(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, s.homeTarget(text, semantics), Extend, semantics, true)
}

// MoveDocStart moves to the start of the text.
func (s Selection) MoveDocStart(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, 0, Move, semantics, true)
}

// MoveDocEnd moves to the end of the text.
func (s Selection) MoveDocEnd(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, text.LenChars(), Move, semantics, true)
}

// ExtendDocStart extends to the start of the text.
func (s Selection) ExtendDocStart(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, 0, Extend, semantics, true)
}

// ExtendDocEnd extends to the end of the text.
func (s Selection) ExtendDocEnd(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, text.LenChars(), Extend, semantics, true)
}

// wordForwardTarget lands at the next boundary for Bar and on the grapheme
// before it for Block.
func (s Selection) wordForwardTarget(text rope.Rope, semantics CursorSemantics) int {
	cursor := s.Cursor(text, semantics)
	if semantics == Bar {
		return textutil.NextWordBoundary(text, cursor)
	}
	if cursor >= text.LenChars() {
		return cursor
	}
	boundary := textutil.NextWordBoundary(text, textutil.NextGrapheme(text, cursor))
	return max(textutil.PreviousGrapheme(text, boundary), cursor)
}

// MoveWordBoundaryForward moves to the next word boundary.
func (s Selection) MoveWordBoundaryForward(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, s.wordForwardTarget(text, semantics), Move, semantics, true)
}

// ExtendWordBoundaryForward extends to the next word boundary.
func (s Selection) ExtendWordBoundaryForward(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	return s.PutCursor(text, s.wordForwardTarget(text, semantics), Extend, semantics, true)
}

// MoveWordBoundaryBackward moves to the previous word boundary.
func (s Selection) MoveWordBoundaryBackward(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	target := textutil.PreviousWordBoundary(text, s.Cursor(text, semantics))
	return s.PutCursor(text, target, Move, semantics, true)
}

// ExtendWordBoundaryBackward extends to the previous word boundary.
func (s Selection) ExtendWordBoundaryBackward(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	target := textutil.PreviousWordBoundary(text, s.Cursor(text, semantics))
	return s.PutCursor(text, target, Extend, semantics, true)
}

// SetFromLineNumber puts the cursor at the start of a 0-based line.
func (s Selection) SetFromLineNumber(text rope.Rope, line int, movement Movement, semantics CursorSemantics) (Selection, error) {
	if line < 0 || line >= text.LenLines() {
		return s, ErrInvalidInput
	}
	return s.PutCursor(text, lineStart(text, line), movement, semantics, true)
}

// CollapseToCursor drops the anchor, keeping only the cursor.
func (s Selection) CollapseToCursor(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	if !s.IsExtended(text, semantics) {
		return s, ErrResultsInSameState
	}
	return s.PutCursor(text, s.Cursor(text, semantics), Move, semantics, false)
}

// FlipDirection swaps cursor and anchor.
func (s Selection) FlipDirection(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	if !s.IsExtended(text, semantics) {
		return s, ErrResultsInSameState
	}
	next := s
	next.dir = Forward
	if s.dir == Forward {
		next.dir = Backward
	}
	return next.WithStoredLinePosition(textutil.Column(text, next.Cursor(text, semantics))), nil
}

// SelectLine selects the whole line under the selection, terminator
// included.
func (s Selection) SelectLine(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	line := text.CharToLine(s.rng.Start)
	last := text.CharToLine(max(s.rng.Start, min(s.rng.End-1, text.LenChars())))
	if last != line {
		return s, ErrSpansMultipleLines
	}
	width := textutil.LineWidth(text, line, true)
	if width == 0 {
		return s, ErrInvalidInput
	}

	start := lineStart(text, line)
	next := New(Range{Start: start, End: start + width}, Forward)
	if next.SameState(s) {
		return s, ErrResultsInSameState
	}
	return next.WithStoredLinePosition(textutil.Column(text, next.Cursor(text, semantics))), nil
}

// SelectAll selects the whole text.
func (s Selection) SelectAll(text rope.Rope, semantics CursorSemantics) (Selection, error) {
	end := text.LenChars()
	if semantics == Block && end == 0 {
		end = 1
	}
	next := New(Range{Start: 0, End: end}, Forward)
	if next.SameState(s) {
		return s, ErrResultsInSameState
	}
	return next.WithStoredLinePosition(textutil.Column(text, next.Cursor(text, semantics))), nil
}
