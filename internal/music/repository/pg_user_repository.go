package repository

import (
	"context"
	"errors"
	"fmt"

	"music-store-server/internal/shared/interfaces"
	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db interfaces.DBTX, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

// CreateUser inserts a new user into the database.
func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role, is_activated, activation_link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("email", user.Email))
	err := r.db.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.Role, user.IsActivated, user.ActivationLink,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create duplicate user by email", zap.String("email", user.Email))
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}
	r.logger.Info("User created successfully", zap.String("userID", user.ID.String()), zap.String("email", user.Email))
	return nil
}

// GetUserByEmail retrieves a user by their email.
func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, is_activated, activation_link, created_at
		FROM users WHERE email = $1
	`
	user := &models.User{}
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("email", email))
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsActivated, &user.ActivationLink, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by email", zap.String("email", email))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email from postgres: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, is_activated, activation_link, created_at
		FROM users WHERE id = $1
	`
	user := &models.User{}
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("id", id.String()))
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsActivated, &user.ActivationLink, &user.CreatedAt,
	)
	if err != nil {
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
	query := `
		SELECT id, email, password_hash, role, is_activated, activation_link, created_at
		FROM users WHERE activation_link = $1
	`
	user := &models.User{}
	r.logger.Debug("Executing query", zap.String("query", query))
	err := r.db.QueryRow(ctx, query, link).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsActivated, &user.ActivationLink, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by activation link")
			return nil, models.ErrActivationLinkInvalid
		}
		r.logger.Error("Failed to get user by activation link from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by activation link from postgres: %w", err)
	}
	return user, nil
}

// ActivateUser marks the user as activated. The activation link is kept so
// that a repeated click on the email link stays a no-op instead of a 400.
func (r *pgUserRepository) ActivateUser(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_activated = TRUE WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("userID", id.String()))

	cmdTag, err := r.db.Exec(ctx, query, id)
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

// ListUsers retrieves all users without password hashes.
func (r *pgUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, email, role, is_activated, created_at FROM users ORDER BY created_at ASC`
	r.logger.Debug("Executing query", zap.String("query", query))
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query users from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Role, &user.IsActivated, &user.CreatedAt); err != nil {
			r.logger.Error("Failed to scan user row", zap.Error(err))
			continue
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating user rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}
