package interfaces

import (
	"context"

	"github.com/google/uuid"

	"music-store-server/internal/shared/models"
)

// SessionStore persists the current refresh token per user.
//
// Implementations must guarantee at most one record per user id: Save is an
// atomic upsert, not a read-modify-write, so concurrent logins for the same
// user leave exactly one record (last writer wins).
type SessionStore interface {
	// Save stores refreshToken as the user's current session, replacing any
	// previous token value.
	Save(ctx context.Context, userID uuid.UUID, refreshToken string) error

	// FindByToken resolves a refresh token value to its session record.
	// Returns models.ErrSessionNotFound if the value is not the current
	// token of any user.
	FindByToken(ctx context.Context, refreshToken string) (*models.Session, error)

	// DeleteByToken removes the session matching the token value. Deleting
	// a token that does not exist is not an error.
	DeleteByToken(ctx context.Context, refreshToken string) error
}
