package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/phrazzld/tasker-api/internal/mocks"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "gate-store-test-secret-with-enough-length",
		TokenLifetimeMinutes: 15,
	})
	require.NoError(t, err)
	return svc
}

func TestGate_ConsultsStatusStoreByTokenID(t *testing.T) {
	t.Parallel()

	tokens := newTokenService(t)
	statuses := new(mocks.TestifyMockTokenStatusStore)
	gate := auth.NewGate(tokens, statuses, nil, nil)

	tok, err := tokens.GenerateToken(context.Background(), 8)
	require.NoError(t, err)

	statuses.On("IsRevoked", mock.Anything, tok.ID).Return(false, nil).Once()
	claims, err := gate.Authenticate(context.Background(), tok.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(8), claims.UserID)

	statuses.On("IsRevoked", mock.Anything, tok.ID).Return(true, nil).Once()
	_, err = gate.Authenticate(context.Background(), tok.Value)
	assert.ErrorIs(t, err, auth.ErrRevokedToken)

	statuses.AssertExpectations(t)
}

func TestGate_RevokeKeepsEntryUntilExpiry(t *testing.T) {
	t.Parallel()

	statuses := new(mocks.TestifyMockTokenStatusStore)
	gate := auth.NewGate(newTokenService(t), statuses, nil, nil)

	expires := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	statuses.On("Revoke", mock.Anything, "jti-42", expires).Return(nil)

	err := gate.Revoke(context.Background(), &auth.Claims{UserID: 1, ID: "jti-42", ExpiresAt: expires})
	require.NoError(t, err)
	statuses.AssertExpectations(t)
}
