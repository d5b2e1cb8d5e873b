package selection

import (
	"fmt"
	"strings"

	"github.com/dshills/quill/internal/engine/rope"
	"github.com/dshills/quill/internal/engine/textutil"
)

// Direction says which end of a selection is the cursor.
type Direction int

const (
	// Forward puts the cursor at the end of the range.
	Forward Direction = iota
	// Backward puts the cursor at the start of the range.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// CursorSemantics selects how a cursor relates to its range.
type CursorSemantics int

const (
	// Bar cursors sit between graphemes.
	Bar CursorSemantics = iota
	// Block cursors occupy one grapheme cell.
	Block
)

// String returns the semantics name.
func (c CursorSemantics) String() string {
	if c == Block {
		return "block"
	}
	return "bar"
}

// ParseCursorSemantics parses "bar" or "block", ignoring case.
func ParseCursorSemantics(s string) (CursorSemantics, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bar":
		return Bar, nil
	case "block":
		return Block, nil
	}
	return Bar, fmt.Errorf("unknown cursor semantics %q: %w", s, ErrInvalidInput)
}

// Movement says whether a motion collapses the selection or extends it.
type Movement int

const (
	Move Movement = iota
	Extend
)

// Selection is a range with a cursor end and a remembered column.
// Selection is a comparable value type.
type Selection struct {
	rng       Range
	dir       Direction
	stored    int
	hasStored bool
}

// New creates a selection over r with the given direction and no stored
// line position.
func New(r Range, dir Direction) Selection {
	return Selection{rng: r, dir: dir}
}

// Cursor creates a collapsed selection at idx for the given semantics.
func Cursor(text rope.Rope, idx int, semantics CursorSemantics) Selection {
	if semantics == Block {
		return New(Range{Start: idx, End: cellEnd(text, idx)}, Forward)
	}
	return New(Range{Start: idx, End: idx}, Forward)
}

// Range returns the selected range.
func (s Selection) Range() Range {
	return s.rng
}

// Start returns the lower bound of the range.
func (s Selection) Start() int {
	return s.rng.Start
}

// End returns the upper bound of the range.
func (s Selection) End() int {
	return s.rng.End
}

// Direction returns the selection direction.
func (s Selection) Direction() Direction {
	return s.dir
}

// StoredLinePosition returns the remembered column, if any.
func (s Selection) StoredLinePosition() (int, bool) {
	return s.stored, s.hasStored
}

// WithStoredLinePosition returns a copy remembering col.
func (s Selection) WithStoredLinePosition(col int) Selection {
	s.stored = col
	s.hasStored = true
	return s
}

// WithoutStoredLinePosition returns a copy with no remembered column.
func (s Selection) WithoutStoredLinePosition() Selection {
	s.stored = 0
	s.hasStored = false
	return s
}

// Shift returns a copy with the range moved by delta chars.
func (s Selection) Shift(delta int) Selection {
	s.rng = s.rng.Shift(delta)
	return s
}

// String returns a compact description used in test failures and logs.
func (s Selection) String() string {
	if s.hasStored {
		return fmt.Sprintf("%s %s col=%d", s.rng, s.dir, s.stored)
	}
	return fmt.Sprintf("%s %s", s.rng, s.dir)
}

// SameState reports whether two selections cover the same range in the
// same direction. The stored line position is not compared.
func (s Selection) SameState(other Selection) bool {
	return s.rng == other.rng && s.dir == other.dir
}

// cellEnd returns the end of the grapheme cell starting at idx. The cell at
// the end of the text is the phantom cell [len, len+1).
func cellEnd(text rope.Rope, idx int) int {
	if idx >= text.LenChars() {
		return text.LenChars() + 1
	}
	return textutil.NextGrapheme(text, idx)
}

// cellStart returns the start of the grapheme cell that ends at end.
func cellStart(text rope.Rope, end int) int {
	if end > text.LenChars() {
		return text.LenChars()
	}
	return textutil.PreviousGrapheme(text, end)
}

// Cursor returns the cursor position for the given semantics.
func (s Selection) Cursor(text rope.Rope, semantics CursorSemantics) int {
	switch {
	case s.dir == Backward:
		return s.rng.Start
	case semantics == Block:
		return max(cellStart(text, s.rng.End), s.rng.Start)
	default:
		return s.rng.End
	}
}

// Anchor returns the fixed end of the selection. Under Block semantics
// this is the start of the anchor cell.
func (s Selection) Anchor(text rope.Rope, semantics CursorSemantics) int {
	switch {
	case s.dir == Forward:
		return s.rng.Start
	case semantics == Block:
		return max(cellStart(text, s.rng.End), s.rng.Start)
	default:
		return s.rng.End
	}
}

// IsExtended reports whether the selection covers more than a bare cursor.
func (s Selection) IsExtended(text rope.Rope, semantics CursorSemantics) bool {
	if semantics == Block {
		return s.rng.End > cellEnd(text, s.rng.Start)
	}
	return s.rng.Start != s.rng.End
}

// Validate checks the selection against the text.
func (s Selection) Validate(text rope.Rope, semantics CursorSemantics) error {
	limit := text.LenChars()
	if semantics == Block {
		limit++
		if s.rng.End-s.rng.Start < 1 {
			return fmt.Errorf("block selection %s is empty: %w", s.rng, ErrInvalidInput)
		}
	}
	if s.rng.Start < 0 || s.rng.Start > s.rng.End || s.rng.End > limit {
		return fmt.Errorf("selection %s outside text of %d chars: %w", s.rng, text.LenChars(), ErrInvalidInput)
	}
	return nil
}

// PutCursor moves the cursor to target. Move collapses the selection onto
// target; Extend keeps the anchor and stretches the range so the cursor
// lands on target. With updateStored the stored line position becomes the
// new cursor column; otherwise it is preserved.
func (s Selection) PutCursor(text rope.Rope, target int, movement Movement, semantics CursorSemantics, updateStored bool) (Selection, error) {
	if target < 0 || target > text.LenChars() {
		return s, fmt.Errorf("cursor target %d outside text of %d chars: %w", target, text.LenChars(), ErrInvalidInput)
	}

	var next Selection
	switch {
	case movement == Move:
		next = Cursor(text, target, semantics)
	case semantics == Block:
		anchor := s.Anchor(text, semantics)
		if target >= anchor {
			next = New(Range{Start: anchor, End: cellEnd(text, target)}, Forward)
		} else {
			next = New(Range{Start: target, End: cellEnd(text, anchor)}, Backward)
		}
	default:
		anchor := s.Anchor(text, semantics)
		if target >= anchor {
			next = New(Range{Start: anchor, End: target}, Forward)
		} else {
			next = New(Range{Start: target, End: anchor}, Backward)
		}
	}

	if updateStored {
		next = next.WithStoredLinePosition(textutil.Column(text, target))
	} else {
		next.stored, next.hasStored = s.stored, s.hasStored
	}

	if next.SameState(s) {
		return s, ErrResultsInSameState
	}
	return next, nil
}

// MoveHorizontally steps the cursor amount graphemes left (Backward) or
// right (Forward) and updates the stored line position.
func (s Selection) MoveHorizontally(text rope.Rope, amount int, movement Movement, dir Direction, semantics CursorSemantics) (Selection, error) {
	if amount <= 0 {
		return s, ErrInvalidInput
	}
	target := s.Cursor(text, semantics)
	for i := 0; i < amount; i++ {
		if dir == Backward {
			target = textutil.PreviousGrapheme(text, target)
		} else {
			target = textutil.NextGrapheme(text, target)
		}
	}
	return s.PutCursor(text, target, movement, semantics, true)
}

// MoveVertically moves the cursor amount lines up (Backward) or down
// (Forward), aiming at the stored line position or, if none, the current
// column. The aimed-for column is remembered on the result.
func (s Selection) MoveVertically(text rope.Rope, amount int, movement Movement, dir Direction, semantics CursorSemantics) (Selection, error) {
	if amount <= 0 {
		return s, ErrInvalidInput
	}

	cursor := s.Cursor(text, semantics)
	line := text.CharToLine(cursor)
	targetLine := line + amount
	if dir == Backward {
		targetLine = line - amount
	}
	targetLine = max(0, min(targetLine, text.LenLines()-1))
	if targetLine == line {
		return s, ErrResultsInSameState
	}

	goal, ok := s.StoredLinePosition()
	if !ok {
		goal = textutil.Column(text, cursor)
	}

	target := textutil.IndexAtColumn(text, targetLine, goal)
	if semantics == Block {
		target = clipToLastCell(text, targetLine, target)
	}

	next, err := s.PutCursor(text, target, movement, semantics, false)
	if err != nil {
		return s, err
	}
	return next.WithStoredLinePosition(goal), nil
}

// clipToLastCell keeps a block cursor on the last grapheme of a non-empty
// line instead of its terminator.
func clipToLastCell(text rope.Rope, line, idx int) int {
	start := text.LineToChar(line)
	end := start + textutil.LineWidth(text, line, false)
	if end > start && idx >= end {
		return textutil.PreviousGrapheme(text, end)
	}
	return idx
}
