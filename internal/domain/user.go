package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Limits applied to user credentials.
const (
	MaxUserNameLength = 100
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit.
	MaxPasswordLength = 72
)

// Common validation errors
var (
	ErrEmptyUserName       = errors.New("user name cannot be empty")
	ErrUserNameTooLong     = errors.New("user name is too long")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User is a registered account. Users own tasks; deleting a user removes
// every task they own.
type User struct {
	ID             int64     `json:"id"           db:"id"`
	Name           string    `json:"name"         db:"name"`
	Password       string    `json:"-"            db:"-"` // plaintext, only held during registration
	HashedPassword string    `json:"-"            db:"password_hash"`
	CreatedAt      time.Time `json:"created_at"   db:"created_at"`
}

// NewUser builds a not-yet-persisted User. The ID is assigned by the store.
// The caller must hash the password before storing the user.
func NewUser(name, password string) (*User, error) {
	user := &User{
		Name:      strings.TrimSpace(name),
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user's name and either the plaintext password (during
// registration) or the stored hash (for loaded users).
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("name", "is required", ErrEmptyUserName)
	}
	if utf8.RuneCountInString(u.Name) > MaxUserNameLength {
		return NewValidationError("name", "is too long", ErrUserNameTooLong)
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return NewValidationError("password", "is too short", ErrPasswordTooShort)
		}
		if len(u.Password) > MaxPasswordLength {
			return NewValidationError("password", "is too long", ErrPasswordTooLong)
		}
		return nil
	}

	if u.HashedPassword == "" {
		return NewValidationError("password", "is required", ErrEmptyHashedPassword)
	}
	return nil
}
