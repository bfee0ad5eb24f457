package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/mocks"
	"github.com/phrazzld/tasker-api/internal/service"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/phrazzld/tasker-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, payload interface{}) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestRegister(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name        string
		payload     map[string]interface{}
		registerErr error
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "valid registration",
			payload:    map[string]interface{}{"name": "alice", "password": "secret1"},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "missing name",
			payload:     map[string]interface{}{"password": "secret1"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid name: required field",
		},
		{
			name:        "password too short",
			payload:     map[string]interface{}{"name": "alice", "password": "short"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid password: too short",
		},
		{
			name:        "unknown field",
			payload:     map[string]interface{}{"name": "alice", "password": "secret1", "email": "a@b.c"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name:        "name taken",
			payload:     map[string]interface{}{"name": "alice", "password": "secret1"},
			registerErr: store.ErrNameExists,
			wantStatus:  http.StatusConflict,
			wantMessage: "Name already taken",
		},
		{
			name:        "store failure",
			payload:     map[string]interface{}{"name": "alice", "password": "secret1"},
			registerErr: errors.New("connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to create user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mocks.MockUserService{
				RegisterFn: func(ctx context.Context, name, password string) (*domain.User, error) {
					if tt.registerErr != nil {
						return nil, tt.registerErr
					}
					return &domain.User{ID: 7, Name: name, CreatedAt: created}, nil
				},
			}
			handler := NewAuthHandler(users, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/users", jsonBody(t, tt.payload))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusCreated {
				assert.Equal(t, tt.wantMessage, decodeError(t, rec).Error)
				return
			}

			var resp UserResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, int64(7), resp.ID)
			assert.Equal(t, "alice", resp.Name)
			assert.True(t, created.Equal(resp.CreatedAt))
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		users := &mocks.MockUserService{
			LoginFn: func(ctx context.Context, name, password string) (*auth.Token, error) {
				assert.Equal(t, "alice", name)
				assert.Equal(t, "secret1", password)
				return &auth.Token{Value: "signed.jwt.value", ID: "jti", ExpiresAt: expires}, nil
			},
		}
		handler := NewAuthHandler(users, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/sessions",
			jsonBody(t, map[string]string{"name": "alice", "password": "secret1"}))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp LoginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "signed.jwt.value", resp.Token)
		assert.Equal(t, "2026-05-01T12:00:00Z", resp.ExpiresAt)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		handler := NewAuthHandler(&mocks.MockUserService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/sessions",
			jsonBody(t, map[string]string{"name": "alice", "password": "wrong-pass"}))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rec).Error)
	})

	t.Run("missing password", func(t *testing.T) {
		handler := NewAuthHandler(&mocks.MockUserService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/sessions",
			jsonBody(t, map[string]string{"name": "alice"}))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		handler := NewAuthHandler(&mocks.MockUserService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", decodeError(t, rec).Error)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("revokes the request token", func(t *testing.T) {
		var revoked *auth.Claims
		users := &mocks.MockUserService{
			LogoutFn: func(ctx context.Context, claims *auth.Claims) error {
				revoked = claims
				return nil
			},
		}
		handler := NewAuthHandler(users, nil)

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/sessions/logout", nil), 5)
		rec := httptest.NewRecorder()
		handler.Logout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, revoked)
		assert.Equal(t, int64(5), revoked.UserID)
		assert.Equal(t, "jti-test", revoked.ID)
	})

	t.Run("no claims", func(t *testing.T) {
		handler := NewAuthHandler(&mocks.MockUserService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/sessions/logout", nil)
		rec := httptest.NewRecorder()
		handler.Logout(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revocation store failure", func(t *testing.T) {
		users := &mocks.MockUserService{
			LogoutFn: func(ctx context.Context, claims *auth.Claims) error {
				return &service.ServiceError{Service: "user", Operation: "logout", Err: errors.New("boom")}
			},
		}
		handler := NewAuthHandler(users, nil)

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/sessions/logout", nil), 5)
		rec := httptest.NewRecorder()
		handler.Logout(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to log out", decodeError(t, rec).Error)
	})
}

func TestDeleteSelf(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		var deleted int64
		users := &mocks.MockUserService{
			DeleteSelfFn: func(ctx context.Context, claims *auth.Claims) error {
				deleted = claims.UserID
				return nil
			},
		}
		handler := NewAuthHandler(users, nil)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/api/users/me", nil), 11)
		rec := httptest.NewRecorder()
		handler.DeleteSelf(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, int64(11), deleted)
	})

	t.Run("account already gone", func(t *testing.T) {
		users := &mocks.MockUserService{
			DeleteSelfFn: func(ctx context.Context, claims *auth.Claims) error {
				return service.ErrAccountGone
			},
		}
		handler := NewAuthHandler(users, nil)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/api/users/me", nil), 11)
		rec := httptest.NewRecorder()
		handler.DeleteSelf(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
