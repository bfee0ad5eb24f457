// Package service provides the task lifecycle and user account services.
package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasker-api/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps the wrapped
// domain sentinel to an HTTP status.
var (
	// ErrInvalidTaskID is returned for a task id that cannot exist.
	ErrInvalidTaskID = domain.NewValidationError("id", "must be a positive integer", nil)

	// ErrAccountGone is returned when a still-valid token names a user that
	// has since been deleted.
	ErrAccountGone = fmt.Errorf("%w: account no longer exists", domain.ErrUnauthenticated)

	// ErrMissingDependency is returned by constructors given a nil dependency.
	ErrMissingDependency = errors.New("missing service dependency")
)

// ServiceError adds the failing operation to an unexpected error.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newTaskServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "task", Operation: operation, Message: message, Err: err}
}

func newUserServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "user", Operation: operation, Message: message, Err: err}
}
