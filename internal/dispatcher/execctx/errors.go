package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingDocument indicates the document is required but not set.
	ErrMissingDocument = errors.New("execution context: document is required")

	// ErrMissingArgument indicates a required action argument is absent or mistyped.
	ErrMissingArgument = errors.New("execution context: missing argument")
)
