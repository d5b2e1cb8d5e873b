// Package view projects a rope and its selections onto a rectangular
// window for display.
//
// A View is a plain value: every scroll operation returns a new View and
// leaves the receiver unchanged. Columns are char offsets from the start of
// a line; rows are line numbers relative to VerticalStart.
package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/quill/internal/engine/rope"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/engine/textutil"
)

// Errors returned by view operations.
var (
	// ErrInvalidInput indicates a zero scroll amount or size.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResultsInSameState indicates the view would not move.
	ErrResultsInSameState = errors.New("results in same state")
)

// View is a window of Width columns by Height lines whose top-left corner
// is at (HorizontalStart, VerticalStart).
type View struct {
	HorizontalStart int
	VerticalStart   int
	Width           int
	Height          int
}

// New creates a view.
func New(horizontalStart, verticalStart, width, height int) View {
	return View{
		HorizontalStart: horizontalStart,
		VerticalStart:   verticalStart,
		Width:           width,
		Height:          height,
	}
}

// Position is a (column, row) pair.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// String returns a human-readable representation of the view.
func (v View) String() string {
	return fmt.Sprintf("view(h=%d v=%d %dx%d)", v.HorizontalStart, v.VerticalStart, v.Width, v.Height)
}

// Resize returns the view with a new size. The origin is kept.
func (v View) Resize(width, height int) (View, error) {
	if width <= 0 || height <= 0 {
		return v, ErrInvalidInput
	}
	v.Width = width
	v.Height = height
	return v, nil
}

func (v View) shifted(h, vert int) (View, error) {
	next := v
	next.HorizontalStart = h
	next.VerticalStart = vert
	if next == v {
		return v, ErrResultsInSameState
	}
	return next, nil
}

// ScrollUp moves the view up by amount lines, stopping at the first line.
func (v View) ScrollUp(amount int) (View, error) {
	if amount <= 0 {
		return v, ErrInvalidInput
	}
	return v.shifted(v.HorizontalStart, max(v.VerticalStart-amount, 0))
}

// ScrollDown moves the view down by amount lines, stopping when the bottom
// edge reaches the last line.
func (v View) ScrollDown(amount int, text rope.Rope) (View, error) {
	if amount <= 0 {
		return v, ErrInvalidInput
	}
	limit := max(text.LenLines()-v.Height, 0)
	next := max(min(v.VerticalStart+amount, limit), v.VerticalStart)
	return v.shifted(v.HorizontalStart, next)
}

// ScrollLeft moves the view left by amount columns, stopping at column 0.
func (v View) ScrollLeft(amount int) (View, error) {
	if amount <= 0 {
		return v, ErrInvalidInput
	}
	return v.shifted(max(v.HorizontalStart-amount, 0), v.VerticalStart)
}

// ScrollRight moves the view right by amount columns, stopping when the
// right edge reaches the last column of the longest line.
func (v View) ScrollRight(amount int, text rope.Rope) (View, error) {
	if amount <= 0 {
		return v, ErrInvalidInput
	}
	limit := max(text.LongestLine()-v.Width, 0)
	next := max(min(v.HorizontalStart+amount, limit), v.HorizontalStart)
	return v.shifted(next, v.VerticalStart)
}

// cursorPoint returns the line and char column of the primary cursor.
func cursorPoint(text rope.Rope, sels selection.Selections, semantics selection.CursorSemantics) (line, col int) {
	cursor := sels.Primary().Cursor(text, semantics)
	line = text.CharToLine(cursor)
	return line, cursor - text.LineToChar(line)
}

// Contains reports whether the (line, col) point is inside the view.
func (v View) Contains(line, col int) bool {
	return line >= v.VerticalStart && line < v.VerticalStart+v.Height &&
		col >= v.HorizontalStart && col < v.HorizontalStart+v.Width
}

// ScrollFollowingCursor moves the view the least distance that brings the
// primary cursor into it. The boolean reports whether the view moved.
func (v View) ScrollFollowingCursor(sels selection.Selections, text rope.Rope, semantics selection.CursorSemantics) (View, bool) {
	line, col := cursorPoint(text, sels, semantics)
	next := v

	switch {
	case col < v.HorizontalStart:
		next.HorizontalStart = col
	case col >= v.HorizontalStart+v.Width:
		next.HorizontalStart = col - (v.Width - 1)
	}
	switch {
	case line < v.VerticalStart:
		next.VerticalStart = line
	case line >= v.VerticalStart+v.Height:
		next.VerticalStart = line - (v.Height - 1)
	}
	return next, next != v
}

// CenterVerticallyAroundCursor moves the view so the primary cursor's line
// sits in the middle row. Cursors within half a view of either end of the
// text cannot be centred.
func (v View) CenterVerticallyAroundCursor(sels selection.Selections, text rope.Rope, semantics selection.CursorSemantics) (View, error) {
	line, _ := cursorPoint(text, sels, semantics)
	half := v.Height / 2
	if line < half || line > text.LenLines()-1-half {
		return v, ErrResultsInSameState
	}
	top := max(0, min(line-half, text.LenLines()-v.Height))
	return v.shifted(v.HorizontalStart, top)
}

// visibleSlice returns the char range of a line that falls inside the view.
func (v View) visibleSlice(text rope.Rope, line int) (int, int) {
	start := text.LineToChar(line)
	width := textutil.LineWidth(text, line, false)
	lo := start + min(v.HorizontalStart, width)
	hi := start + min(v.HorizontalStart+v.Width, width)
	return lo, hi
}

// Text renders exactly Height rows, each terminated by "\n". Rows past the
// end of the text are empty.
func (v View) Text(text rope.Rope) string {
	var sb strings.Builder
	lines := text.LenLines()
	for r := 0; r < v.Height; r++ {
		line := v.VerticalStart + r
		if line < lines {
			lo, hi := v.visibleSlice(text, line)
			sb.WriteString(text.Slice(lo, hi))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// LineNumbers renders the 1-based numbers of the visible lines, one per
// row, each terminated by "\n".
func (v View) LineNumbers(text rope.Rope) string {
	var sb strings.Builder
	last := min(v.VerticalStart+v.Height, text.LenLines())
	for line := v.VerticalStart; line < last; line++ {
		sb.WriteString(strconv.Itoa(line + 1))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// clientPosition maps a char index inside the view to a screen cell. The
// column is a display width so wide graphemes shift later cursors.
func (v View) clientPosition(text rope.Rope, idx int) (Position, bool) {
	line := text.CharToLine(idx)
	col := idx - text.LineToChar(line)
	if !v.Contains(line, col) {
		return Position{}, false
	}
	start := text.LineToChar(line) + v.HorizontalStart
	return Position{Col: textutil.DisplayWidth(text.Slice(start, idx)), Row: line - v.VerticalStart}, true
}

// CursorPositions returns the screen positions of every cursor inside the
// view, in selection order. Cursors outside the view are omitted.
func (v View) CursorPositions(text rope.Rope, sels selection.Selections, semantics selection.CursorSemantics) []Position {
	out := make([]Position, 0, sels.Count())
	for _, s := range sels.All() {
		if p, ok := v.clientPosition(text, s.Cursor(text, semantics)); ok {
			out = append(out, p)
		}
	}
	return out
}

// PrimaryCursorPosition returns the screen position of the primary cursor,
// or false if it is outside the view.
func (v View) PrimaryCursorPosition(text rope.Rope, sels selection.Selections, semantics selection.CursorSemantics) (Position, bool) {
	return v.clientPosition(text, sels.Primary().Cursor(text, semantics))
}

// DocumentCursorPositions returns every cursor as a (char column, line)
// pair in document coordinates.
func DocumentCursorPositions(text rope.Rope, sels selection.Selections, semantics selection.CursorSemantics) []Position {
	out := make([]Position, 0, sels.Count())
	for _, s := range sels.All() {
		cursor := s.Cursor(text, semantics)
		line := text.CharToLine(cursor)
		out = append(out, Position{Col: cursor - text.LineToChar(line), Row: line})
	}
	return out
}
