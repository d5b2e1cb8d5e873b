package history

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("no changes to undo")
	ErrNothingToRedo = errors.New("no changes to redo")
)

// History manages the undo and redo stacks of a document.
type History struct {
	undoStack []*ChangeSet
	redoStack []*ChangeSet

	// maxEntries bounds the undo stack; 0 means unbounded.
	maxEntries int
}

// NewHistory creates a history holding at most maxEntries undo entries.
// A maxEntries of 0 or less keeps every entry.
func NewHistory(maxEntries int) *History {
	return &History{maxEntries: max(maxEntries, 0)}
}

// Push records a change set and clears the redo stack.
func (h *History) Push(cs *ChangeSet) {
	h.pushUndo(cs)
	h.redoStack = nil
}

func (h *History) pushUndo(cs *ChangeSet) {
	h.undoStack = append(h.undoStack, cs)
	h.trim()
}

func (h *History) trim() {
	if h.maxEntries > 0 && len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the newest change set and moves it to the redo stack. The
// caller reverts it against the text.
func (h *History) Undo() (*ChangeSet, error) {
	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	cs := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, cs)
	return cs, nil
}

// Redo pops the newest undone change set and moves it back to the undo
// stack without clearing the remaining redo entries.
func (h *History) Redo() (*ChangeSet, error) {
	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	cs := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.pushUndo(cs)
	return cs, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (Info, bool) {
	if len(h.undoStack) == 0 {
		return Info{}, false
	}
	return h.undoStack[len(h.undoStack)-1].Info(), true
}

// PeekRedo returns info about the next redo entry without removing it.
func (h *History) PeekRedo() (Info, bool) {
	if len(h.redoStack) == 0 {
		return Info{}, false
	}
	return h.redoStack[len(h.redoStack)-1].Info(), true
}

// SetMaxEntries changes the undo bound. If the stack is larger, the oldest
// entries are dropped. 0 removes the bound.
func (h *History) SetMaxEntries(n int) {
	h.maxEntries = max(n, 0)
	h.trim()
}

// MaxEntries returns the undo bound; 0 means unbounded.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
