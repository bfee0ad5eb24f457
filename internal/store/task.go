package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Every method takes
// the owning user's id as its first argument after the context and applies
// it as a filter, so no code path can read or write another user's tasks.
type TaskStore interface {
	// Create inserts task for ownerID, filling in the generated ID. The
	// task's OwnerID must equal ownerID.
	Create(ctx context.Context, ownerID int64, task *domain.Task) error

	// GetForUpdate loads the task (id, ownerID) and locks its row until the
	// surrounding transaction ends.
	// Returns ErrTaskNotFound when no such task belongs to ownerID.
	GetForUpdate(ctx context.Context, ownerID, id int64) (*domain.Task, error)

	// Update writes the mutable fields of task, matching on (task.ID, ownerID).
	// Returns ErrTaskNotFound when no row matched.
	Update(ctx context.Context, ownerID int64, task *domain.Task) error

	// Delete removes the task (id, ownerID) and reports whether a row was removed.
	Delete(ctx context.Context, ownerID, id int64) (bool, error)

	// DeleteCompleted removes every completed task of ownerID and returns
	// how many rows were removed.
	DeleteCompleted(ctx context.Context, ownerID int64) (int64, error)

	// List returns ownerID's tasks matching query. The query is normalized
	// before use; an empty result is not an error.
	List(ctx context.Context, ownerID int64, query domain.TaskQuery) ([]domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) TaskStore
}
