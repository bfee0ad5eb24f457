package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"user not found is not found", ErrUserNotFound, ErrNotFound},
		{"task not found is domain not found", ErrTaskNotFound, domain.ErrNotFound},
		{"name exists is duplicate", ErrNameExists, ErrDuplicate},
		{"name exists is domain conflict", ErrNameExists, domain.ErrConflict},
		{"invalid entity is validation", ErrInvalidEntity, domain.ErrValidation},
		{"wrapped in store error", NewStoreError("task", "update", "no rows", ErrTaskNotFound), domain.ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.err, tt.target)
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(errors.New("some error")))
	assert.False(t, IsNotFoundError(ErrNameExists))
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrUserNotFound)))
	assert.True(t, IsNotFoundError(ErrTaskNotFound))
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(ErrTaskNotFound))
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(fmt.Errorf("register: %w", ErrNameExists)))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("task", "list", "query failed", cause)

	assert.Equal(t, "list operation on task failed: query failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("user", "delete", "nothing removed", nil)
	assert.Equal(t, "delete operation on user failed: nothing removed", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
