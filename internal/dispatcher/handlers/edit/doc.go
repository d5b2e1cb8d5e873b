// Package edit provides handlers that change text: insertion, deletion,
// the clipboard, surrounding pairs, and undo/redo.
//
// Every text change is applied at all selections at once and recorded as
// one undoable change set. An edit that no selection could perform fails
// with engine.ErrSelectionAtDocBounds so the client can ring a bell.
//
// edit.copy leaves text alone and is acknowledged without a redraw. Every
// other successful edit redraws the view after scrolling it to keep the
// primary cursor visible.
package edit
