package repository

import (
	"context"
	"errors"
	"fmt"

	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(pool *pgxpool.Pool, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		pool:   pool,
		logger: logger.Named("PgUserRepo"),
	}
}

// CreateUserWithBasket inserts a user and their basket in one transaction.
func (r *pgUserRepository) CreateUserWithBasket(ctx context.Context, user *models.User) (uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userQuery := `
		INSERT INTO users (email, username, password_hash, role, is_activated, activation_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, userQuery,
		user.Email, user.Username, user.PasswordHash, user.Role, user.IsActivated, user.ActivationLink,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "users_email_key" {
				r.logger.Warn("Attempted to create duplicate user by email", zap.String("email", user.Email))
				return uuid.Nil, models.ErrEmailAlreadyExists
			}
			r.logger.Warn("Attempted to create duplicate user by username", zap.String("username", user.Username))
			return uuid.Nil, models.ErrUserAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("username", user.Username))
		return uuid.Nil, fmt.Errorf("failed to create user in postgres: %w", err)
	}

	var basketID uuid.UUID
	basketQuery := `INSERT INTO baskets (user_id) VALUES ($1) RETURNING id`
	if err := tx.QueryRow(ctx, basketQuery, user.ID).Scan(&basketID); err != nil {
		r.logger.Error("Failed to create basket for user", zap.Error(err), zap.String("userID", user.ID.String()))
		return uuid.Nil, fmt.Errorf("failed to create basket: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit user creation", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to commit user creation: %w", err)
	}

	r.logger.Info("User and basket created successfully",
		zap.String("userID", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("basketID", basketID.String()),
	)
	return basketID, nil
}

const userColumns = `id, email, username, password_hash, role, is_activated, activation_link, created_at`

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.Role, &user.IsActivated, &user.ActivationLink, &user.CreatedAt,
	)
}

// GetUserByUsername retrieves a user by their username.
func (r *pgUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user := &models.User{}
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("username", username))
	if err := scanUser(r.pool.QueryRow(ctx, query, username), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by username", zap.String("username", username))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by username from postgres", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by username from postgres: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user := &models.User{}
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("id", id.String()))
	if err := scanUser(r.pool.QueryRow(ctx, query, id), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by ID", zap.String("id", id.String()))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id from postgres", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return user, nil
}

// GetUserByActivationLink retrieves a user by their activation link.
func (r *pgUserRepository) GetUserByActivationLink(ctx context.Context, link string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE activation_link = $1`
	user := &models.User{}
	r.logger.Debug("Executing query", zap.String("query", query))
	if err := scanUser(r.pool.QueryRow(ctx, query, link), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by activation link")
			return nil, models.ErrActivationLinkInvalid
		}
		r.logger.Error("Failed to get user by activation link from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by activation link from postgres: %w", err)
	}
	return user, nil
}

// ActivateUser marks the user as activated.
func (r *pgUserRepository) ActivateUser(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_activated = TRUE WHERE id = $1`
	cmdTag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to activate user in postgres", zap.Error(err), zap.String("userID", id.String()))
		return fmt.Errorf("failed to activate user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to activate non-existent user", zap.String("userID", id.String()))
		return models.ErrUserNotFound
	}
	r.logger.Info("User activated successfully", zap.String("userID", id.String()))
	return nil
}

// DeleteUser removes a user. The basket, its entries, the user's ratings and
// comments go with them via ON DELETE CASCADE.
func (r *pgUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	cmdTag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete user from postgres", zap.Error(err), zap.String("userID", id.String()))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent user", zap.String("userID", id.String()))
		return models.ErrUserNotFound
	}
	r.logger.Info("User deleted successfully", zap.String("userID", id.String()))
	return nil
}

// GetBasketIDByUserID returns the basket ID belonging to the user.
func (r *pgUserRepository) GetBasketIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	query := `SELECT id FROM baskets WHERE user_id = $1`
	var basketID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&basketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Basket not found for user", zap.String("userID", userID.String()))
			return uuid.Nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get basket id from postgres", zap.Error(err), zap.String("userID", userID.String()))
		return uuid.Nil, fmt.Errorf("failed to get basket id from postgres: %w", err)
	}
	return basketID, nil
}
