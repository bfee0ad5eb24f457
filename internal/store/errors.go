package store

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasker-api/internal/domain"
)

// Common store errors used across all store implementations. Each one wraps
// the matching domain sentinel so callers above the store only need to test
// against the domain taxonomy.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store, or exists but is outside the caller's owner scope.
	ErrNotFound = fmt.Errorf("entity %w", domain.ErrNotFound)

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = fmt.Errorf("entity already exists: %w", domain.ErrConflict)

	// ErrInvalidEntity is returned when the database rejects a row because
	// a check or not-null constraint failed.
	ErrInvalidEntity = fmt.Errorf("invalid entity: %w", domain.ErrValidation)

	// ErrTransactionFailed wraps failures to begin, commit or roll back a
	// transaction. Errors returned by the transaction body are passed through.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrTaskNotFound indicates that no task with the given id belongs to the owner.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrNameExists indicates that a user with the given name already exists.
	ErrNameExists = fmt.Errorf("%w: name", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "task")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
