package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  alice ", "secret1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Name != "alice" {
		t.Errorf("Expected name %q, got %q", "alice", user.Name)
	}

	if user.ID != 0 {
		t.Errorf("Expected unassigned ID, got %d", user.ID)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	_, err = NewUser("", "secret1")
	if !errors.Is(err, ErrEmptyUserName) {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserName, err)
	}

	_, err = NewUser("alice", "short")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	_, err = NewUser("alice", strings.Repeat("x", MaxPasswordLength+1))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidate(t *testing.T) {
	loaded := User{ID: 1, Name: "alice", HashedPassword: "$2a$10$hash"}
	if err := loaded.Validate(); err != nil {
		t.Errorf("Expected loaded user to be valid, got %v", err)
	}

	noHash := User{ID: 1, Name: "alice"}
	err := noHash.Validate()
	if !errors.Is(err, ErrEmptyHashedPassword) {
		t.Errorf("Expected error %v, got %v", ErrEmptyHashedPassword, err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}

	longName := User{Name: strings.Repeat("a", MaxUserNameLength+1), HashedPassword: "x"}
	if err := longName.Validate(); !errors.Is(err, ErrUserNameTooLong) {
		t.Errorf("Expected error %v, got %v", ErrUserNameTooLong, err)
	}

	accented := User{Name: strings.Repeat("ã", MaxUserNameLength), HashedPassword: "x"}
	if err := accented.Validate(); err != nil {
		t.Errorf("Expected %d-character name to be valid, got %v", MaxUserNameLength, err)
	}
}
