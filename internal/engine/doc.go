// Package engine provides the document model of the quill editor.
//
// A Document owns a rope of text, an ordered set of selections, the view
// the client is looking through, the undo history, a clipboard and the
// file it was loaded from. Every action the client can request is one
// method on Document; each returns nil or an error and leaves the
// document unchanged on error.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - rope: immutable B+ tree rope indexed by char and line
//   - textutil: grapheme, word and column helpers over a rope
//   - selection: Range, Selection and the Selections collection
//   - view: the client's window onto the text
//   - history: change sets and the undo/redo stacks
//
// # Edits
//
// Edit actions run once per selection in ascending order. Each selection
// that acts records a history.Change and shifts every later selection by
// the change in length, so offsets stay coherent across the whole set.
// The changes of one action form a single history.ChangeSet:
//
//	doc := engine.NewFromString("idk\nsome\n")
//	_ = doc.InsertString("x")
//	_ = doc.Undo()
//
// # Cursor semantics
//
// Under Bar semantics a cursor is a position between graphemes. Under
// Block semantics it covers one grapheme cell. The semantics is fixed
// when the document is created.
//
// # Thread Safety
//
// A Document is not safe for concurrent use. The editor serializes access.
package engine
