package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/metrics"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/store"
)

// Task operation names used for logging and metrics.
const (
	opCreate          = "create"
	opUpdate          = "update"
	opDelete          = "delete"
	opDeleteCompleted = "delete_completed"
	opList            = "list"
)

// CreateTaskParams carries the fields a client supplies for a new task.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    domain.Priority
	ScheduledAt *time.Time
}

// TaskService provides owner-scoped task operations.
type TaskService interface {
	// CreateTask validates params and stores a new, not completed task for ownerID.
	CreateTask(ctx context.Context, ownerID int64, params CreateTaskParams) (*domain.Task, error)

	// UpdateTask merges patch over the current task inside one transaction
	// and returns the stored result. A task owned by someone else is
	// reported exactly like a missing one.
	UpdateTask(ctx context.Context, ownerID, taskID int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask reports whether a task was removed. false is not an error.
	DeleteTask(ctx context.Context, ownerID, taskID int64) (bool, error)

	// DeleteCompletedTasks removes every completed task of ownerID and
	// returns the count. Repeating the call returns 0.
	DeleteCompletedTasks(ctx context.Context, ownerID int64) (int64, error)

	// ListTasks returns ownerID's tasks matching query.
	ListTasks(ctx context.Context, ownerID int64, query domain.TaskQuery) ([]domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks    store.TaskStore
	db       store.TxBeginner
	recorder metrics.TaskRecorder
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if tasks or db is nil. A nil recorder disables metrics.
func NewTaskService(
	tasks store.TaskStore,
	db store.TxBeginner,
	recorder metrics.TaskRecorder,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, fmt.Errorf("%w: task store", ErrMissingDependency)
	}
	if db == nil {
		return nil, fmt.Errorf("%w: database", ErrMissingDependency)
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:    tasks,
		db:       db,
		recorder: recorder,
		logger:   logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	ownerID int64,
	params CreateTaskParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(ownerID, params.Title, params.Description, params.Priority, params.ScheduledAt)
	if err != nil {
		s.record(opCreate, err)
		log.Debug("rejected invalid task", slog.Int64("owner_id", ownerID), slog.Any("error", err))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.tasks.WithTx(tx).Create(ctx, ownerID, task)
	})
	if store.IsNotFoundError(err) {
		s.record(opCreate, ErrAccountGone)
		log.Warn("token names a deleted account", slog.Int64("owner_id", ownerID))
		return nil, ErrAccountGone
	}
	s.record(opCreate, err)
	if err != nil {
		log.Error("failed to create task",
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err))
		return nil, newTaskServiceError(opCreate, "failed to save task", err)
	}

	log.Info("task created",
		slog.Int64("owner_id", ownerID),
		slog.Int64("task_id", task.ID))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	ownerID, taskID int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("owner_id", ownerID),
		slog.Int64("task_id", taskID))

	if taskID <= 0 {
		s.record(opUpdate, ErrInvalidTaskID)
		return nil, ErrInvalidTaskID
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		err := domain.NewValidationError("priority", "must be one of low, medium, high", domain.ErrInvalidPriority)
		s.record(opUpdate, err)
		return nil, err
	}

	var updated domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		current, err := txTasks.GetForUpdate(ctx, ownerID, taskID)
		if err != nil {
			return err
		}

		updated = patch.Apply(*current)
		if err := updated.Validate(); err != nil {
			return err
		}

		return txTasks.Update(ctx, ownerID, &updated)
	})
	s.record(opUpdate, err)

	switch {
	case err == nil:
		log.Info("task updated")
		return &updated, nil
	case errors.Is(err, domain.ErrNotFound):
		log.Debug("task not found for owner")
		return nil, err
	case errors.Is(err, domain.ErrValidation):
		log.Debug("rejected invalid task update", slog.Any("error", err))
		return nil, err
	default:
		log.Error("failed to update task", slog.Any("error", err))
		return nil, newTaskServiceError(opUpdate, "failed to update task", err)
	}
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if taskID <= 0 {
		s.recorder.RecordTaskOperation(opDelete, metrics.OutcomeNotFound)
		return false, nil
	}

	var removed bool
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error
		removed, err = s.tasks.WithTx(tx).Delete(ctx, ownerID, taskID)
		return err
	})
	if err != nil {
		s.record(opDelete, err)
		log.Error("failed to delete task",
			slog.Int64("owner_id", ownerID),
			slog.Int64("task_id", taskID),
			slog.Any("error", err))
		return false, newTaskServiceError(opDelete, "failed to delete task", err)
	}

	if !removed {
		s.recorder.RecordTaskOperation(opDelete, metrics.OutcomeNotFound)
		return false, nil
	}

	s.recorder.RecordTaskOperation(opDelete, metrics.OutcomeOK)
	log.Info("task deleted",
		slog.Int64("owner_id", ownerID),
		slog.Int64("task_id", taskID))
	return true, nil
}

// DeleteCompletedTasks implements TaskService.DeleteCompletedTasks
func (s *taskServiceImpl) DeleteCompletedTasks(ctx context.Context, ownerID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error
		count, err = s.tasks.WithTx(tx).DeleteCompleted(ctx, ownerID)
		return err
	})
	s.record(opDeleteCompleted, err)
	if err != nil {
		log.Error("failed to delete completed tasks",
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err))
		return 0, newTaskServiceError(opDeleteCompleted, "failed to delete completed tasks", err)
	}

	s.recorder.RecordBulkDeleted(count)
	log.Info("completed tasks deleted",
		slog.Int64("owner_id", ownerID),
		slog.Int64("count", count))
	return count, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	ownerID int64,
	query domain.TaskQuery,
) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := query.Normalize()
	if err := q.Validate(); err != nil {
		s.record(opList, err)
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, ownerID, q)
	s.record(opList, err)
	if err != nil {
		log.Error("failed to list tasks",
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err))
		return nil, newTaskServiceError(opList, "failed to list tasks", err)
	}

	log.Debug("listed tasks",
		slog.Int64("owner_id", ownerID),
		slog.Int("count", len(tasks)),
		slog.String("sort", string(q.Sort)),
		slog.Int("limit", q.Limit),
		slog.Int("offset", q.Offset))
	return tasks, nil
}

func (s *taskServiceImpl) record(operation string, err error) {
	s.recorder.RecordTaskOperation(operation, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case store.IsNotFoundError(err), errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
