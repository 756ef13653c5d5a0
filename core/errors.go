package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested experience, pattern keyword
	// or chat session does not exist. It is distinct from an empty result
	// set, which is a successful outcome.
	ErrNotFound = errors.New("not found")
)

// ValidationError rejects malformed input before any state change occurs.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// NewValidationError constructs a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
