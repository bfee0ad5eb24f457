package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasker-api/internal/platform/logger"
)

// FailureRecorder receives the reason label of every rejected credential.
type FailureRecorder interface {
	AuthFailure(reason string)
}

// Gate resolves a bearer token to the user it was issued for. It holds no
// state of its own; revocations live in the injected TokenStatusStore.
type Gate struct {
	tokens   JWTService
	statuses TokenStatusStore
	failures FailureRecorder
	logger   *slog.Logger
}

// NewGate creates a Gate. failures may be nil.
func NewGate(tokens JWTService, statuses TokenStatusStore, failures FailureRecorder, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		tokens:   tokens,
		statuses: statuses,
		failures: failures,
		logger:   logger.With(slog.String("component", "auth_gate")),
	}
}

// Authenticate returns the claims of tokenString, or an error wrapping
// domain.ErrUnauthenticated: ErrMissingToken when it is empty,
// ErrInvalidToken (or ErrExpiredToken) when verification fails, and
// ErrRevokedToken when it was logged out.
func (g *Gate) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := g.authenticate(ctx, tokenString)
	if err != nil && g.failures != nil {
		g.failures.AuthFailure(FailureReason(err))
	}
	return claims, err
}

func (g *Gate) authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := g.tokens.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := g.statuses.IsRevoked(ctx, claims.ID)
	if err != nil {
		log.Error("failed to check token revocation",
			slog.String("token_id", claims.ID),
			slog.Any("error", err))
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		log.Debug("rejected revoked token",
			slog.String("token_id", claims.ID),
			slog.Int64("user_id", claims.UserID))
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// Revoke adds the token described by claims to the revocation set.
func (g *Gate) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return ErrInvalidToken
	}
	return g.statuses.Revoke(ctx, claims.ID, claims.ExpiresAt)
}
