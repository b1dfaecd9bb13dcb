package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
// The user ID doubles as the member identifier inside groups.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique).
	// It is also the default member label.
	Email string

	// DisplayName is an optional friendly name.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	CreatedAt int64
	UpdatedAt int64
}

// NewUser builds a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Label returns the display label used for group member details.
func (u *User) Label() string {
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}
