package auth

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasker-api/internal/domain"
)

// Authentication errors. All of them wrap domain.ErrUnauthenticated so the
// API maps any of them to 401 without knowing the specific reason.
var (
	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = fmt.Errorf("%w: token absent", domain.ErrUnauthenticated)

	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = fmt.Errorf("%w: token invalid", domain.ErrUnauthenticated)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("%w: token expired", ErrInvalidToken)

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = fmt.Errorf("%w: token not yet valid", ErrInvalidToken)

	// ErrRevokedToken indicates the token was valid but has been revoked by logout
	ErrRevokedToken = fmt.Errorf("%w: token revoked", domain.ErrUnauthenticated)

	// ErrInvalidCredentials indicates a login with an unknown name or a wrong password.
	// The two cases are not distinguished.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)

	// ErrPasswordMismatch is returned by PasswordVerifier.Compare on a wrong password.
	ErrPasswordMismatch = errors.New("password does not match")
)

// FailureReason returns a short label for err suitable for metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "missing"
	case errors.Is(err, ErrExpiredToken):
		return "expired"
	case errors.Is(err, ErrRevokedToken):
		return "revoked"
	case errors.Is(err, ErrInvalidCredentials):
		return "bad_credentials"
	case errors.Is(err, ErrInvalidToken):
		return "invalid"
	default:
		return "other"
	}
}
