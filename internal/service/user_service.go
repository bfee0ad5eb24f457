package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/platform/logger"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/phrazzld/tasker-api/internal/store"
)

// TokenRevoker revokes an access token before its expiry. *auth.Gate
// satisfies it.
type TokenRevoker interface {
	Revoke(ctx context.Context, claims *auth.Claims) error
}

// UserService provides account and session operations.
type UserService interface {
	// Register creates a user with a unique name.
	// Returns an error matching domain.ErrConflict if the name is taken.
	Register(ctx context.Context, name, password string) (*domain.User, error)

	// Login exchanges a name and password for an access token.
	// An unknown name and a wrong password both return auth.ErrInvalidCredentials.
	Login(ctx context.Context, name, password string) (*auth.Token, error)

	// Logout revokes the token described by claims.
	Logout(ctx context.Context, claims *auth.Claims) error

	// DeleteSelf deletes the user named by claims together with their tasks
	// and revokes the token used for the request.
	DeleteSelf(ctx context.Context, claims *auth.Claims) error
}

// UserServiceDeps bundles the collaborators of a UserService.
type UserServiceDeps struct {
	Users    store.UserStore
	DB       store.TxBeginner
	Hasher   auth.PasswordHasher
	Verifier auth.PasswordVerifier
	Tokens   auth.JWTService
	Revoker  TokenRevoker
	// Failures is optional.
	Failures auth.FailureRecorder
	Logger   *slog.Logger
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users    store.UserStore
	db       store.TxBeginner
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	revoker  TokenRevoker
	failures auth.FailureRecorder
	logger   *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(deps UserServiceDeps) (*UserServiceImpl, error) {
	switch {
	case deps.Users == nil:
		return nil, fmt.Errorf("%w: user store", ErrMissingDependency)
	case deps.DB == nil:
		return nil, fmt.Errorf("%w: database", ErrMissingDependency)
	case deps.Hasher == nil:
		return nil, fmt.Errorf("%w: password hasher", ErrMissingDependency)
	case deps.Verifier == nil:
		return nil, fmt.Errorf("%w: password verifier", ErrMissingDependency)
	case deps.Tokens == nil:
		return nil, fmt.Errorf("%w: token service", ErrMissingDependency)
	case deps.Revoker == nil:
		return nil, fmt.Errorf("%w: token revoker", ErrMissingDependency)
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &UserServiceImpl{
		users:    deps.Users,
		db:       deps.DB,
		hasher:   deps.Hasher,
		verifier: deps.Verifier,
		tokens:   deps.Tokens,
		revoker:  deps.Revoker,
		failures: deps.Failures,
		logger:   log.With(slog.String("component", "user_service")),
	}, nil
}

// Register creates a new user with the specified name and password.
// Uses a transaction to ensure atomicity of the operation.
func (s *UserServiceImpl) Register(ctx context.Context, name, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, password)
	if err != nil {
		log.Debug("rejected invalid registration", slog.Any("error", err))
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return nil, newUserServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("attempted to register an existing name", slog.String("name", user.Name))
			return nil, err
		}
		log.Error("failed to save user to database", slog.Any("error", err))
		return nil, newUserServiceError("register", "failed to save user", err)
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("name", user.Name))
	return user, nil
}

// Login implements UserService.Login
func (s *UserServiceImpl) Login(ctx context.Context, name, password string) (*auth.Token, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown name")
			return nil, s.rejectCredentials()
		}
		log.Error("failed to load user for login", slog.Any("error", err))
		return nil, newUserServiceError("login", "failed to load user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login with wrong password", slog.Int64("user_id", user.ID))
			return nil, s.rejectCredentials()
		}
		log.Error("failed to verify password",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err))
		return nil, newUserServiceError("login", "failed to verify password", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate token",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err))
		return nil, newUserServiceError("login", "failed to generate token", err)
	}

	log.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("token_id", token.ID))
	return token, nil
}

// Logout implements UserService.Logout
func (s *UserServiceImpl) Logout(ctx context.Context, claims *auth.Claims) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.revoker.Revoke(ctx, claims); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return err
		}
		log.Error("failed to revoke token", slog.Any("error", err))
		return newUserServiceError("logout", "failed to revoke token", err)
	}

	log.Info("user logged out",
		slog.Int64("user_id", claims.UserID),
		slog.String("token_id", claims.ID))
	return nil
}

// DeleteSelf implements UserService.DeleteSelf
func (s *UserServiceImpl) DeleteSelf(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return auth.ErrMissingToken
	}
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.Int64("user_id", claims.UserID))

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.users.WithTx(tx).Delete(ctx, claims.UserID)
	})
	deleted := err == nil
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		log.Error("failed to delete user", slog.Any("error", err))
		return newUserServiceError("delete_self", "failed to delete user", err)
	}

	// The token is revoked even when the account was already gone so it
	// cannot be replayed.
	if revokeErr := s.revoker.Revoke(ctx, claims); revokeErr != nil {
		log.Error("failed to revoke token after account deletion", slog.Any("error", revokeErr))
		if deleted {
			return newUserServiceError("delete_self", "failed to revoke token", revokeErr)
		}
	}

	if !deleted {
		log.Debug("token refers to a deleted account")
		return ErrAccountGone
	}

	log.Info("user deleted")
	return nil
}

func (s *UserServiceImpl) rejectCredentials() error {
	if s.failures != nil {
		s.failures.AuthFailure(auth.FailureReason(auth.ErrInvalidCredentials))
	}
	return auth.ErrInvalidCredentials
}
