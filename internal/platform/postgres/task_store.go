package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sqlx.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, ownerID int64, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task.OwnerID != ownerID {
		return domain.NewValidationError("owner_id", "does not match the requesting user", domain.ErrEmptyOwner)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	query, args, err := psql.Insert("tasks").
		Columns("owner_id", "title", "description", "priority", "scheduled_at", "created_at", "completed").
		Values(ownerID, task.Title, task.Description, string(task.Priority), task.ScheduledAt, task.CreatedAt, task.Completed).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return store.NewStoreError("task", "create", "build query", err)
	}

	if err := s.db.GetContext(ctx, &task.ID, query, args...); err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("task owner does not exist", slog.Int64("owner_id", ownerID))
			return store.NewStoreError("task", "create", "owner does not exist",
				fmt.Errorf("%w: %v", store.ErrUserNotFound, err))
		}
		log.Error("failed to create task", slog.Int64("owner_id", ownerID), slog.Any("error", err))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Debug("task created", slog.Int64("owner_id", ownerID), slog.Int64("task_id", task.ID))
	return nil
}

// GetForUpdate implements store.TaskStore.GetForUpdate
func (s *PostgresTaskStore) GetForUpdate(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, store.NewStoreError("task", "get", "build query", err)
	}

	var task domain.Task
	if err := s.db.GetContext(ctx, &task, query, args...); err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to load task",
			slog.Int64("owner_id", ownerID),
			slog.Int64("task_id", id),
			slog.Any("error", err))
		return nil, store.NewStoreError("task", "get", "select failed", mapped)
	}
	return &task, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, ownerID int64, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	query, args, err := psql.Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("priority", string(task.Priority)).
		Set("scheduled_at", task.ScheduledAt).
		Set("completed", task.Completed).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"id": task.ID}).
		ToSql()
	if err != nil {
		return store.NewStoreError("task", "update", "build query", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update task",
			slog.Int64("owner_id", ownerID),
			slog.Int64("task_id", task.ID),
			slog.Any("error", err))
		return store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Delete("tasks").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, store.NewStoreError("task", "delete", "build query", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("owner_id", ownerID),
			slog.Int64("task_id", id),
			slog.Any("error", err))
		return false, store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, store.NewStoreError("task", "delete", "rows affected", err)
	}
	return n > 0, nil
}

// DeleteCompleted implements store.TaskStore.DeleteCompleted
func (s *PostgresTaskStore) DeleteCompleted(ctx context.Context, ownerID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Delete("tasks").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"completed": true}).
		ToSql()
	if err != nil {
		return 0, store.NewStoreError("task", "delete_completed", "build query", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete completed tasks",
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err))
		return 0, store.NewStoreError("task", "delete_completed", "delete failed", MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("task", "delete_completed", "rows affected", err)
	}

	log.Debug("completed tasks deleted", slog.Int64("owner_id", ownerID), slog.Int64("count", n))
	return n, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, ownerID int64, q domain.TaskQuery) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := BuildTaskListQuery(ownerID, q)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0)
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		log.Error("failed to list tasks", slog.Int64("owner_id", ownerID), slog.Any("error", err))
		return nil, store.NewStoreError("task", "list", "select failed", MapError(err))
	}
	return tasks, nil
}
