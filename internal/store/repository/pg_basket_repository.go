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

// Compile-time check to ensure pgBasketRepository implements BasketRepository
var _ BasketRepository = (*pgBasketRepository)(nil)

type pgBasketRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgBasketRepository creates a new PostgreSQL-backed BasketRepository.
func NewPgBasketRepository(pool *pgxpool.Pool, logger *zap.Logger) BasketRepository {
	return &pgBasketRepository{
		pool:   pool,
		logger: logger.Named("PgBasketRepo"),
	}
}

// AddDevice puts a device into the basket and bumps the basket total in the
// same transaction.
func (r *pgBasketRepository) AddDevice(ctx context.Context, basketID, deviceID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `INSERT INTO basket_devices (basket_id, device_id) VALUES ($1, $2)`
	if _, err := tx.Exec(ctx, insertQuery, basketID, deviceID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			r.logger.Warn("Attempted to add unknown device or basket",
				zap.String("basketID", basketID.String()), zap.String("deviceID", deviceID.String()))
			return models.ErrDeviceNotFound
		}
		r.logger.Error("Failed to insert basket entry", zap.Error(err), zap.String("basketID", basketID.String()))
		return fmt.Errorf("failed to insert basket entry: %w", err)
	}

	totalQuery := `
		UPDATE baskets SET total_cost = total_cost + (SELECT price FROM devices WHERE id = $2)
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, totalQuery, basketID, deviceID); err != nil {
		r.logger.Error("Failed to update basket total", zap.Error(err), zap.String("basketID", basketID.String()))
		return fmt.Errorf("failed to update basket total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit basket addition", zap.Error(err))
		return fmt.Errorf("failed to commit basket addition: %w", err)
	}

	r.logger.Info("Device added to basket", zap.String("basketID", basketID.String()), zap.String("deviceID", deviceID.String()))
	return nil
}

// RemoveDevice takes one entry of the device out of the basket and lowers the
// basket total accordingly.
func (r *pgBasketRepository) RemoveDevice(ctx context.Context, basketID, deviceID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery := `
		DELETE FROM basket_devices
		WHERE id = (
			SELECT id FROM basket_devices
			WHERE basket_id = $1 AND device_id = $2
			LIMIT 1
		)
	`
	cmdTag, err := tx.Exec(ctx, deleteQuery, basketID, deviceID)
	if err != nil {
		r.logger.Error("Failed to delete basket entry", zap.Error(err), zap.String("basketID", basketID.String()))
		return fmt.Errorf("failed to delete basket entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to remove device that is not in the basket",
			zap.String("basketID", basketID.String()), zap.String("deviceID", deviceID.String()))
		return models.ErrBasketEntryNotFound
	}

	totalQuery := `
		UPDATE baskets SET total_cost = total_cost - (SELECT price FROM devices WHERE id = $2)
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, totalQuery, basketID, deviceID); err != nil {
		r.logger.Error("Failed to update basket total", zap.Error(err), zap.String("basketID", basketID.String()))
		return fmt.Errorf("failed to update basket total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit basket removal", zap.Error(err))
		return fmt.Errorf("failed to commit basket removal: %w", err)
	}

	r.logger.Info("Device removed from basket", zap.String("basketID", basketID.String()), zap.String("deviceID", deviceID.String()))
	return nil
}

// GetBasketByUserID returns the user's basket with its entries.
func (r *pgBasketRepository) GetBasketByUserID(ctx context.Context, userID uuid.UUID) (*models.Basket, error) {
	basket := &models.Basket{}
	query := `SELECT id, user_id, total_cost FROM baskets WHERE user_id = $1`
	err := r.pool.QueryRow(ctx, query, userID).Scan(&basket.ID, &basket.UserID, &basket.TotalCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Basket not found for user", zap.String("userID", userID.String()))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get basket from postgres", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to get basket: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT id, basket_id, device_id FROM basket_devices WHERE basket_id = $1`, basket.ID)
	if err != nil {
		r.logger.Error("Failed to query basket entries", zap.Error(err), zap.String("basketID", basket.ID.String()))
		return nil, fmt.Errorf("failed to query basket entries: %w", err)
	}
	defer rows.Close()

	devices := make([]models.BasketDevice, 0)
	for rows.Next() {
		var d models.BasketDevice
		if err := rows.Scan(&d.ID, &d.BasketID, &d.DeviceID); err != nil {
			r.logger.Error("Failed to scan basket entry row", zap.Error(err))
			continue
		}
		devices = append(devices, d)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating basket entry rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating basket entry rows: %w", err)
	}
	basket.Devices = devices
	return basket, nil
}
