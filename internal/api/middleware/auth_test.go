package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateFunc func(ctx context.Context, token string) (*auth.Claims, error)

func (f gateFunc) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	return f(ctx, token)
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	const userID = int64(42)

	tests := []struct {
		name           string
		authHeader     string
		gateErr        error
		expectedToken  string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			expectedToken:  "valid-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "scheme is case-insensitive",
			authHeader:     "bearer valid-token",
			expectedToken:  "valid-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing auth header",
			gateErr:        auth.ErrMissingToken,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Authorization header required",
		},
		{
			name:           "invalid auth format",
			authHeader:     "InvalidFormat",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid authorization format",
		},
		{
			name:           "basic scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid authorization format",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			gateErr:        auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Token expired",
		},
		{
			name:           "revoked token",
			authHeader:     "Bearer revoked-token",
			gateErr:        auth.ErrRevokedToken,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Token revoked",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			gateErr:        auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:           "revocation store failure",
			authHeader:     "Bearer valid-token",
			gateErr:        errors.New("check token revocation: store offline"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Authentication error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotToken string
			gate := gateFunc(func(_ context.Context, token string) (*auth.Claims, error) {
				gotToken = token
				if tc.gateErr != nil {
					return nil, tc.gateErr
				}
				return &auth.Claims{UserID: userID, ID: "jti"}, nil
			})

			var seenUserID int64
			var seenClaims *auth.Claims
			handler := NewAuthMiddleware(gate).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenUserID, _ = GetUserID(r)
				seenClaims, _ = shared.ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, tc.expectedToken, gotToken)
				assert.Equal(t, userID, seenUserID)
				require.NotNil(t, seenClaims)
				assert.Equal(t, "jti", seenClaims.ID)
				return
			}

			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedError, body.Error)
			assert.NotContains(t, rr.Body.String(), "store offline")
		})
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	token, err := BearerToken(req)
	require.NoError(t, err)
	assert.Empty(t, token)

	req.Header.Set("Authorization", "Bearer  abc.def.ghi ")
	token, err = BearerToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"Bearer", "Bearer ", "Bearer a b", "Token abc"} {
		req.Header.Set("Authorization", header)
		_, err = BearerToken(req)
		assert.ErrorIs(t, err, ErrMalformedAuthorization, header)
	}
}

func TestGetUserID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok)

	req = req.WithContext(shared.WithClaims(req.Context(), &auth.Claims{UserID: 9}))
	id, ok := GetUserID(req)
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)
}
