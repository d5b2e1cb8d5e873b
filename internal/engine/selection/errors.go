package selection

import "errors"

// Errors returned by selection primitives and collective operations.
var (
	// ErrResultsInSameState indicates the operation would not change anything.
	ErrResultsInSameState = errors.New("results in same state")

	// ErrSpansMultipleLines indicates a single-line operation met a
	// selection covering more than one line.
	ErrSpansMultipleLines = errors.New("selection spans multiple lines")

	// ErrInvalidInput indicates an argument outside the text or otherwise unusable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoOverlap indicates two ranges share no position.
	ErrNoOverlap = errors.New("ranges do not overlap")

	// ErrSingleSelection indicates the operation needs more than one selection.
	ErrSingleSelection = errors.New("only one selection")

	// ErrMultipleSelections indicates the operation needs exactly one selection.
	ErrMultipleSelections = errors.New("more than one selection")

	// ErrCannotAddSelectionAbove indicates the topmost selection is on the first line.
	ErrCannotAddSelectionAbove = errors.New("cannot add selection above")

	// ErrCannotAddSelectionBelow indicates the bottommost selection is on the last line.
	ErrCannotAddSelectionBelow = errors.New("cannot add selection below")

	// ErrNoSearchMatches indicates a search or split found nothing.
	ErrNoSearchMatches = errors.New("no search matches")
)
