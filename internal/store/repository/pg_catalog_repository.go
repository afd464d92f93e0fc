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

// Compile-time check to ensure pgCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*pgCatalogRepository)(nil)

type pgCatalogRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgCatalogRepository creates a new PostgreSQL-backed CatalogRepository.
func NewPgCatalogRepository(pool *pgxpool.Pool, logger *zap.Logger) CatalogRepository {
	return &pgCatalogRepository{
		pool:   pool,
		logger: logger.Named("PgCatalogRepo"),
	}
}

// CreateBrand inserts a new brand.
func (r *pgCatalogRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	query := `INSERT INTO brands (name) VALUES ($1) RETURNING id`
	err := r.pool.QueryRow(ctx, query, brand.Name).Scan(&brand.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create duplicate brand", zap.String("name", brand.Name))
			return models.ErrAlreadyExists
		}
		r.logger.Error("Failed to create brand in postgres", zap.Error(err), zap.String("name", brand.Name))
		return fmt.Errorf("failed to create brand: %w", err)
	}
	r.logger.Info("Brand created successfully", zap.String("brandID", brand.ID.String()), zap.String("name", brand.Name))
	return nil
}

// ListBrands returns all brands.
func (r *pgCatalogRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM brands ORDER BY name ASC`)
	if err != nil {
		r.logger.Error("Failed to query brands from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	brands := make([]models.Brand, 0)
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			r.logger.Error("Failed to scan brand row", zap.Error(err))
			continue
		}
		brands = append(brands, b)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating brand rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating brand rows: %w", err)
	}
	return brands, nil
}

// DeleteBrand removes a brand.
func (r *pgCatalogRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete brand from postgres", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent brand", zap.String("id", id.String()))
		return models.ErrBrandNotFound
	}
	r.logger.Info("Brand deleted successfully", zap.String("brandID", id.String()))
	return nil
}

// GetBrandByName retrieves a brand by its name.
func (r *pgCatalogRepository) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	brand := &models.Brand{}
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM brands WHERE name = $1`, name).Scan(&brand.ID, &brand.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Brand not found by name", zap.String("name", name))
			return nil, models.ErrBrandNotFound
		}
		r.logger.Error("Failed to get brand by name from postgres", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to get brand by name: %w", err)
	}
	return brand, nil
}

// CreateType inserts a new device type.
func (r *pgCatalogRepository) CreateType(ctx context.Context, deviceType *models.DeviceType) error {
	query := `INSERT INTO types (name) VALUES ($1) RETURNING id`
	err := r.pool.QueryRow(ctx, query, deviceType.Name).Scan(&deviceType.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create duplicate type", zap.String("name", deviceType.Name))
			return models.ErrAlreadyExists
		}
		r.logger.Error("Failed to create type in postgres", zap.Error(err), zap.String("name", deviceType.Name))
		return fmt.Errorf("failed to create type: %w", err)
	}
	r.logger.Info("Type created successfully", zap.String("typeID", deviceType.ID.String()), zap.String("name", deviceType.Name))
	return nil
}

// ListTypes returns all device types.
func (r *pgCatalogRepository) ListTypes(ctx context.Context) ([]models.DeviceType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM types ORDER BY name ASC`)
	if err != nil {
		r.logger.Error("Failed to query types from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to query types: %w", err)
	}
	defer rows.Close()

	types := make([]models.DeviceType, 0)
	for rows.Next() {
		var t models.DeviceType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			r.logger.Error("Failed to scan type row", zap.Error(err))
			continue
		}
		types = append(types, t)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating type rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating type rows: %w", err)
	}
	return types, nil
}

// DeleteType removes a device type.
func (r *pgCatalogRepository) DeleteType(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM types WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete type from postgres", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to delete type: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent type", zap.String("id", id.String()))
		return models.ErrTypeNotFound
	}
	r.logger.Info("Type deleted successfully", zap.String("typeID", id.String()))
	return nil
}

// GetTypeByName retrieves a device type by its name.
func (r *pgCatalogRepository) GetTypeByName(ctx context.Context, name string) (*models.DeviceType, error) {
	deviceType := &models.DeviceType{}
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM types WHERE name = $1`, name).Scan(&deviceType.ID, &deviceType.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Type not found by name", zap.String("name", name))
			return nil, models.ErrTypeNotFound
		}
		r.logger.Error("Failed to get type by name from postgres", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to get type by name: %w", err)
	}
	return deviceType, nil
}
