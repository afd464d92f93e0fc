package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of the currently valid refresh token for
// a user. There is at most one session per user: a new login or refresh
// overwrites the stored token value, which implicitly invalidates the
// previous one (its value no longer resolves to a record).
type Session struct {
	UserID       uuid.UUID `db:"user_id"`
	RefreshToken string    `db:"refresh_token"`
	UpdatedAt    time.Time `db:"updated_at"`
}
