package engine

import (
	"errors"
	"fmt"
)

// Errors returned by document actions.
var (
	// ErrSelectionAtDocBounds indicates no selection could act because each
	// sits at the start or end of the text.
	ErrSelectionAtDocBounds = errors.New("selection at document bounds")

	// ErrNoChangesToUndo indicates the undo stack is empty.
	ErrNoChangesToUndo = errors.New("no changes to undo")

	// ErrNoChangesToRedo indicates the redo stack is empty.
	ErrNoChangesToRedo = errors.New("no changes to redo")

	// ErrInvalidInput indicates an unusable argument, such as an empty string.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFileNotOpen indicates a save on a document without a file.
	ErrFileNotOpen = errors.New("no file open")
)

// SelectionsError wraps an error from the selection package.
type SelectionsError struct {
	Err error
}

func (e *SelectionsError) Error() string {
	return "selections: " + e.Err.Error()
}

func (e *SelectionsError) Unwrap() error {
	return e.Err
}

// ViewError wraps an error from the view package.
type ViewError struct {
	Err error
}

func (e *ViewError) Error() string {
	return "view: " + e.Err.Error()
}

func (e *ViewError) Unwrap() error {
	return e.Err
}

// IOError records a failed file operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func selectionsErr(err error) error {
	if err == nil {
		return nil
	}
	return &SelectionsError{Err: err}
}

func viewErr(err error) error {
	if err == nil {
		return nil
	}
	return &ViewError{Err: err}
}
