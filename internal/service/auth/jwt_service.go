package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token bound to userID.
	GenerateToken(ctx context.Context, userID int64) (*Token, error)

	// ValidateToken verifies the signature and time claims of tokenString and
	// returns its claims. It does not consult the revocation set; that is
	// the Gate's job.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Token is a freshly issued access token.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Claims represents the validated content of an access token.
type Claims struct {
	// UserID is the identifier of the user the token was issued for.
	UserID int64 `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
