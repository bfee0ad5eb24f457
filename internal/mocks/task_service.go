package mocks

import (
	"context"

	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/service"
)

// MockTaskService implements service.TaskService for handler tests.
// Unset function fields return zero values.
type MockTaskService struct {
	CreateTaskFn           func(ctx context.Context, ownerID int64, params service.CreateTaskParams) (*domain.Task, error)
	UpdateTaskFn           func(ctx context.Context, ownerID, taskID int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn           func(ctx context.Context, ownerID, taskID int64) (bool, error)
	DeleteCompletedTasksFn func(ctx context.Context, ownerID int64) (int64, error)
	ListTasksFn            func(ctx context.Context, ownerID int64, query domain.TaskQuery) ([]domain.Task, error)
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	ownerID int64,
	params service.CreateTaskParams,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, ownerID, params)
	}
	return nil, nil
}

// UpdateTask implements service.TaskService
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	ownerID, taskID int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, ownerID, taskID, patch)
	}
	return nil, nil
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, ownerID, taskID int64) (bool, error) {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, ownerID, taskID)
	}
	return false, nil
}

// DeleteCompletedTasks implements service.TaskService
func (m *MockTaskService) DeleteCompletedTasks(ctx context.Context, ownerID int64) (int64, error) {
	if m.DeleteCompletedTasksFn != nil {
		return m.DeleteCompletedTasksFn(ctx, ownerID)
	}
	return 0, nil
}

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(
	ctx context.Context,
	ownerID int64,
	query domain.TaskQuery,
) ([]domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, ownerID, query)
	}
	return nil, nil
}
