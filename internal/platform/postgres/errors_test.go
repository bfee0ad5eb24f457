package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"no rows", sql.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), store.ErrNotFound},
		{"unique", &pgconn.PgError{Code: uniqueViolationCode}, domain.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_owner_id_fkey"}, domain.ErrValidation},
		{"check", &pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_title_not_blank"}, store.ErrInvalidEntity},
		{"not null", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"}, store.ErrInvalidEntity},
		{"bad enum label", &pgconn.PgError{Code: invalidTextRepresentationCode}, domain.ErrValidation},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tt.err), tt.target)
		})
	}

	assert.NoError(t, MapError(nil))

	other := errors.New("connection reset")
	assert.Same(t, other, MapError(other))

	unmapped := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(unmapped), MapError(unmapped))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	err := MapUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}, store.ErrNameExists)
	assert.ErrorIs(t, err, store.ErrNameExists)

	err = MapUniqueViolation(sql.ErrNoRows, store.ErrNameExists)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotErrorIs(t, err, store.ErrNameExists)
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), nil))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), nil), store.ErrNotFound)
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrTaskNotFound), store.ErrTaskNotFound)

	resultErr := errors.New("driver does not support rows affected")
	err := CheckRowsAffected(sqlmock.NewErrorResult(resultErr), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, resultErr)

	assert.Error(t, CheckRowsAffected(nil, nil))
}
