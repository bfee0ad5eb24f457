package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Callers classify failures with
// errors.Is against these sentinels; anything that matches none of them is
// treated as an internal error.
var (
	// ErrValidation is returned when input fails validation. It is usually
	// wrapped by a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated is returned when a request carries no usable
	// credentials (missing, invalid, expired or revoked token, bad password).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound is returned when a resource does not exist or is not owned
	// by the caller. The two cases are indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an operation would violate a uniqueness
	// constraint, such as registering a name that is already taken.
	ErrConflict = errors.New("conflict")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. If err is nil the
// error wraps ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel so errors.Is(err, ErrValidation) holds.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation for every ValidationError, even one created around
// a more specific sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
