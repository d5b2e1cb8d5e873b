package handler

import "fmt"

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusError indicates an error occurred.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Effect describes what a successful action changed, which decides the
// response sent back to the client.
type Effect uint8

const (
	// EffectNone means nothing visible changed.
	EffectNone Effect = iota
	// EffectSelection means selections moved; the view follows the cursor
	// and is redrawn only if it scrolled.
	EffectSelection
	// EffectText means text changed; the view follows the cursor and is
	// always redrawn.
	EffectText
	// EffectView means the view itself changed and must be redrawn as is.
	EffectView
)

// String returns a string representation of the effect.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectSelection:
		return "selection"
	case EffectText:
		return "text"
	case EffectView:
		return "view"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Effect describes the visible change on success.
	Effect Effect

	// Message is an optional status message for the client.
	Message string

	// Data holds handler-specific return data.
	Data map[string]any
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a successful result with no visible effect.
func Success() Result {
	return Result{Status: StatusOK}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// From builds a result from an engine call: an error result if err is
// non-nil, otherwise success with the given effect.
func From(err error, effect Effect) Result {
	if err != nil {
		return Error(err)
	}
	return Result{Status: StatusOK, Effect: effect}
}

// WithEffect returns the result with the effect set.
func (r Result) WithEffect(effect Effect) Result {
	r.Effect = effect
	return r
}

// WithMessage returns the result with a message set.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithData returns the result with a data entry added.
func (r Result) WithData(key string, value any) Result {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData returns a data entry.
func (r Result) GetData(key string) (any, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}
