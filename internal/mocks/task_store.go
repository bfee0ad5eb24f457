package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
//
// Without function fields it behaves as a small owner-scoped in-memory
// store. Its List honors the owner, priority, title and pagination criteria
// but always orders by id; ordering is covered by the SQL builder tests.
type MockTaskStore struct {
	CreateFn          func(ctx context.Context, ownerID int64, task *domain.Task) error
	GetForUpdateFn    func(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	UpdateFn          func(ctx context.Context, ownerID int64, task *domain.Task) error
	DeleteFn          func(ctx context.Context, ownerID, id int64) (bool, error)
	DeleteCompletedFn func(ctx context.Context, ownerID int64) (int64, error)
	ListFn            func(ctx context.Context, ownerID int64, query domain.TaskQuery) ([]domain.Task, error)

	Tasks      map[int64]domain.Task
	LastTaskID int64

	// WithTxCalls counts how often a transactional view was requested
	WithTxCalls int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty MockTaskStore.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[int64]domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, ownerID int64, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ownerID, task)
	}
	if task.OwnerID != ownerID {
		return domain.NewValidationError("owner_id", "does not match the requesting user", domain.ErrEmptyOwner)
	}

	m.LastTaskID++
	task.ID = m.LastTaskID
	m.Tasks[task.ID] = *task
	return nil
}

// GetForUpdate implements the TaskStore interface
func (m *MockTaskStore) GetForUpdate(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, ownerID, id)
	}

	task, ok := m.Tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, ownerID int64, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, task)
	}

	existing, ok := m.Tasks[task.ID]
	if !ok || existing.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	updated := *task
	updated.OwnerID = existing.OwnerID
	updated.CreatedAt = existing.CreatedAt
	m.Tasks[task.ID] = updated
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}

	task, ok := m.Tasks[id]
	if !ok || task.OwnerID != ownerID {
		return false, nil
	}
	delete(m.Tasks, id)
	return true, nil
}

// DeleteCompleted implements the TaskStore interface
func (m *MockTaskStore) DeleteCompleted(ctx context.Context, ownerID int64) (int64, error) {
	if m.DeleteCompletedFn != nil {
		return m.DeleteCompletedFn(ctx, ownerID)
	}

	var removed int64
	for id, task := range m.Tasks {
		if task.OwnerID == ownerID && task.Completed {
			delete(m.Tasks, id)
			removed++
		}
	}
	return removed, nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, ownerID int64, query domain.TaskQuery) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, query)
	}

	q := query.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	matched := make([]domain.Task, 0)
	for _, task := range m.Tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if q.Priority != nil && task.Priority != *q.Priority {
			continue
		}
		if q.TitleContains != "" &&
			!strings.Contains(strings.ToLower(task.Title), strings.ToLower(q.TitleContains)) {
			continue
		}
		if q.Date != nil {
			start, end := domain.DayRange(*q.Date)
			if task.ScheduledAt == nil || task.ScheduledAt.Before(start) || !task.ScheduledAt.Before(end) {
				continue
			}
		}
		matched = append(matched, task)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if q.Offset >= len(matched) {
		return make([]domain.Task, 0), nil
	}
	matched = matched[q.Offset:]
	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// WithTx returns the same mock so transactional writes land in Tasks.
func (m *MockTaskStore) WithTx(tx *sqlx.Tx) store.TaskStore {
	m.WithTxCalls++
	return m
}
