package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTokenStatusStore is a mock of auth.TokenStatusStore for use with testify/mock
type TestifyMockTokenStatusStore struct {
	mock.Mock
}

var _ auth.TokenStatusStore = (*TestifyMockTokenStatusStore)(nil)

// IsRevoked is a mock implementation of auth.TokenStatusStore.IsRevoked
func (m *TestifyMockTokenStatusStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// Revoke is a mock implementation of auth.TokenStatusStore.Revoke
func (m *TestifyMockTokenStatusStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}
