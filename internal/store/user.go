package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasker-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user whose password is already hashed and fills in
	// the generated ID and CreatedAt.
	// Returns ErrNameExists if the name is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByName retrieves a user by their unique name.
	// Returns ErrUserNotFound if the user does not exist.
	GetByName(ctx context.Context, name string) (*domain.User, error)

	// Delete removes a user and, through the foreign key cascade, all of
	// their tasks.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) UserStore
}
