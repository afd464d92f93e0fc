package database

import (
	"context"
	"errors"
	"fmt"

	"music-store-server/internal/shared/interfaces"
	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgSessionStore implements SessionStore
var _ interfaces.SessionStore = (*pgSessionStore)(nil)

// pgSessionStore keeps a single refresh session per user in the
// refresh_sessions table. A UNIQUE constraint on user_id backs the
// one-session-per-user rule, and Save relies on ON CONFLICT so that
// replacement is a single atomic statement.
type pgSessionStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgSessionStore creates a new PostgreSQL-backed SessionStore.
func NewPgSessionStore(pool *pgxpool.Pool, logger *zap.Logger) interfaces.SessionStore {
	return &pgSessionStore{
		pool:   pool,
		logger: logger.Named("PgSessionStore"),
	}
}

// Save stores the refresh token for the user, replacing any previous session.
func (s *pgSessionStore) Save(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	query := `
		INSERT INTO refresh_sessions (user_id, refresh_token, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET refresh_token = EXCLUDED.refresh_token, updated_at = NOW()
	`
	if _, err := s.pool.Exec(ctx, query, userID, refreshToken); err != nil {
		s.logger.Error("Failed to save refresh session", zap.Error(err), zap.String("userID", userID.String()))
		return fmt.Errorf("failed to save refresh session: %w", err)
	}
	s.logger.Debug("Refresh session saved", zap.String("userID", userID.String()))
	return nil
}

// FindByToken returns the session associated with the refresh token.
func (s *pgSessionStore) FindByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	query := `
		SELECT user_id, refresh_token, updated_at
		FROM refresh_sessions
		WHERE refresh_token = $1
	`
	var session models.Session
	err := s.pool.QueryRow(ctx, query, refreshToken).Scan(
		&session.UserID,
		&session.RefreshToken,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("Refresh session not found")
			return nil, models.ErrSessionNotFound
		}
		s.logger.Error("Failed to find refresh session", zap.Error(err))
		return nil, fmt.Errorf("failed to find refresh session: %w", err)
	}
	return &session, nil
}

// DeleteByToken removes the session for the given refresh token. Deleting a
// token that is already gone is not an error.
func (s *pgSessionStore) DeleteByToken(ctx context.Context, refreshToken string) error {
	query := `DELETE FROM refresh_sessions WHERE refresh_token = $1`
	tag, err := s.pool.Exec(ctx, query, refreshToken)
	if err != nil {
		s.logger.Error("Failed to delete refresh session", zap.Error(err))
		return fmt.Errorf("failed to delete refresh session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn("Attempted to delete non-existent refresh session")
		return nil
	}
	s.logger.Info("Refresh session deleted")
	return nil
}
