// Package history records reversible edits for the document engine.
//
// # Operations
//
// An Operation is one of NoOp, Insert, Delete or Replace. Insert and
// Replace carry the new text; the inverse of a Delete or Replace carries
// the text it removed.
//
// # Changes
//
// A Change is the record of one selection's part in an edit: the forward
// operation, its inverse, the char position it was applied at, and the
// selection on both sides.
//
// # Change sets
//
// A ChangeSet groups every Change made by one request, together with the
// whole selection set before and after. It is the unit of undo:
//
//	h := NewHistory(0) // unbounded
//	h.Push(cs)
//
//	cs, err := h.Undo()
//	text = cs.Revert(text)
//	selections = cs.SelectionsBefore
//
// Changes inside a set are applied and reverted in ascending order. Each
// Change stores its position in the text as it was when the change ran, so
// reverting walks the set left to right with a running shift.
package history
