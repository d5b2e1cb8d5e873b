package dispatcher

import "errors"

var (
	// ErrNoHandler is returned for an action no namespace serves.
	ErrNoHandler = errors.New("dispatcher: unknown action")

	// ErrPanic replaces the result of a handler that panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidAction is returned for an action without a name.
	ErrInvalidAction = errors.New("dispatcher: invalid action")

	// ErrDuplicateNamespace is returned when a namespace is registered twice.
	ErrDuplicateNamespace = errors.New("dispatcher: namespace already registered")
)
