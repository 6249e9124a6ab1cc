package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns trips.
// PasswordHash is a bcrypt hash; the raw password is never stored.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated caller as carried by a session token.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// Session is the result of a successful signup or login: the user plus a
// signed token and the instant it stops being valid.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}
