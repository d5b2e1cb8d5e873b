// Package cursor provides handlers for cursor movement.
//
// Every motion collapses each selection to a cursor and moves it. Motions
// run once per selection; selections that land on the same position merge.
//
// # Actions
//
//   - cursor.moveLeft, cursor.moveRight: one grapheme
//   - cursor.moveUp, cursor.moveDown: one line, keeping the goal column
//   - cursor.moveLineStart, cursor.moveLineTextStart, cursor.moveLineEnd
//   - cursor.moveHome: line text start, or line start if already there
//   - cursor.moveWordForward, cursor.moveWordBackward: word boundaries
//   - cursor.movePageUp, cursor.movePageDown: one view height
//   - cursor.moveDocStart, cursor.moveDocEnd: single cursor at a text end
//   - cursor.goTo: single cursor at the start of a 1-based line
//
// A repeat count runs a motion that many times. Only a failure on the
// first step is reported.
//
// # Usage
//
//	r := dispatcher.NewRouter()
//	_ = r.Register(cursor.NewHandler())
package cursor
