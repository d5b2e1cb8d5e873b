package config

import (
	"fmt"

	"github.com/dshills/quill/internal/config/loader"
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a setting with an unusable value.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Value is the invalid value.
	Value any
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Path, e.Value, e.Message)
}

func invalid(path string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Value: value, Message: fmt.Sprintf(format, args...)}
}
