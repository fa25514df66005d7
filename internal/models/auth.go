package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account holder
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	Verified     bool      `json:"verified" db:"verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// VerificationToken is a one-time email verification token. There is at
// most one per email. A used token is kept until it expires so that a
// repeated submission can be answered without error.
type VerificationToken struct {
	Email     string    `json:"email" db:"email"`
	Token     string    `json:"token" db:"token"`
	Expires   time.Time `json:"expires" db:"expires"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Expired reports whether the token is past its expiry at now.
func (t VerificationToken) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}
