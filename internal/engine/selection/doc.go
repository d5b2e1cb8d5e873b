// Package selection implements the cursor and range model of the editor.
//
// A Selection is a Range plus a Direction that says which end is the cursor
// (head) and which is the anchor. How the cursor relates to the range
// depends on the process-wide CursorSemantics:
//
//   - Bar: the cursor is a zero-width position between graphemes. A
//     collapsed selection has Start == End.
//   - Block: the cursor occupies one grapheme cell. A collapsed selection
//     spans exactly one grapheme, and a cursor may sit on the phantom cell
//     one past the end of the text.
//
// Every primitive returns a fresh value; nothing is mutated in place. A
// primitive that would leave the selection unchanged returns
// ErrResultsInSameState so callers can tell a no-op from a move.
//
// Selections is the ordered, non-overlapping collection of selections with
// one designated primary. Collective helpers apply a per-selection
// primitive to every member and re-sort and merge afterwards.
//
// Each selection remembers a stored line position: the column the user
// last targeted horizontally. Vertical motion reads it so that moving
// through short lines and back recovers the original column; horizontal
// and line-anchor motion overwrite it.
package selection
