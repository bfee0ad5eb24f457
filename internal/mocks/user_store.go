package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn    func(ctx context.Context, user *domain.User) error
	GetByIDFn   func(ctx context.Context, id int64) (*domain.User, error)
	GetByNameFn func(ctx context.Context, name string) (*domain.User, error)
	DeleteFn    func(ctx context.Context, id int64) error

	// Data for default implementation, keyed by name
	Users          map[string]*domain.User
	LastUserID     int64
	CreateError    error
	GetByNameError error
	DeleteError    error

	// DeletedIDs records every id passed to Delete
	DeletedIDs []int64
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface. The default assigns sequential ids.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Users[user.Name]; exists {
		return store.ErrNameExists
	}

	m.LastUserID++
	user.ID = m.LastUserID
	user.Password = ""
	m.Users[user.Name] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, store.ErrUserNotFound
}

// GetByName implements the UserStore interface
func (m *MockUserStore) GetByName(ctx context.Context, name string) (*domain.User, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}

	if m.GetByNameError != nil {
		return nil, m.GetByNameError
	}

	user, exists := m.Users[name]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	m.DeletedIDs = append(m.DeletedIDs, id)

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	for name, user := range m.Users {
		if user.ID == id {
			delete(m.Users, name)
			return nil
		}
	}

	return store.ErrUserNotFound
}

// WithTx returns the same mock; tests observe transactional calls through it.
func (m *MockUserStore) WithTx(tx *sqlx.Tx) store.UserStore {
	return m
}
