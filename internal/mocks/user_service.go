package mocks

import (
	"context"

	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/service"
	"github.com/phrazzld/tasker-api/internal/service/auth"
)

// MockUserService implements service.UserService for handler tests.
type MockUserService struct {
	RegisterFn   func(ctx context.Context, name, password string) (*domain.User, error)
	LoginFn      func(ctx context.Context, name, password string) (*auth.Token, error)
	LogoutFn     func(ctx context.Context, claims *auth.Claims) error
	DeleteSelfFn func(ctx context.Context, claims *auth.Claims) error
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService
func (m *MockUserService) Register(ctx context.Context, name, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, name, password)
	}
	return &domain.User{ID: 1, Name: name}, nil
}

// Login implements service.UserService
func (m *MockUserService) Login(ctx context.Context, name, password string) (*auth.Token, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, name, password)
	}
	return nil, auth.ErrInvalidCredentials
}

// Logout implements service.UserService
func (m *MockUserService) Logout(ctx context.Context, claims *auth.Claims) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, claims)
	}
	return nil
}

// DeleteSelf implements service.UserService
func (m *MockUserService) DeleteSelf(ctx context.Context, claims *auth.Claims) error {
	if m.DeleteSelfFn != nil {
		return m.DeleteSelfFn(ctx, claims)
	}
	return nil
}
