package errors

import "fmt"

// ValidationError describes a configuration value that failed validation.
// It wraps ErrInvalidConfiguration so callers can match with errors.Is.
type ValidationError struct {
	// Module is the package that rejected the value (e.g. "limit").
	Module string

	// Field is the name of the rejected configuration field.
	Field string

	// Value is the rejected value.
	Value interface{}

	// Reason explains why the value was rejected.
	Reason string

	// Hint optionally suggests a valid value. Set via WithHint.
	Hint string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a suggestion to the error and returns it for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes the error match ErrInvalidConfiguration with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}
