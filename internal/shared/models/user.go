package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles assigned to users. The store service grants ADMIN access to catalog
// mutation endpoints; the music service only uses USER.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account in either backend. The music service leaves
// Username empty (it identifies users by email); the store service requires
// a unique username.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Username       string    `db:"username" json:"username,omitempty"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Role           string    `db:"role" json:"role"`
	IsActivated    bool      `db:"is_activated" json:"isActivated"`
	ActivationLink string    `db:"activation_link" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
