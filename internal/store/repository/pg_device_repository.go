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

// Compile-time check to ensure pgDeviceRepository implements DeviceRepository
var _ DeviceRepository = (*pgDeviceRepository)(nil)

type pgDeviceRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgDeviceRepository creates a new PostgreSQL-backed DeviceRepository.
func NewPgDeviceRepository(pool *pgxpool.Pool, logger *zap.Logger) DeviceRepository {
	return &pgDeviceRepository{
		pool:   pool,
		logger: logger.Named("PgDeviceRepo"),
	}
}

const deviceColumns = `id, name, price, rating, rating_count, img_path, brand_id, type_id`

func scanDevice(row pgx.Row, device *models.Device) error {
	return row.Scan(
		&device.ID, &device.Name, &device.Price, &device.Rating,
		&device.RatingCount, &device.ImgPath, &device.BrandID, &device.TypeID,
	)
}

// CreateDevice inserts a device together with its info rows in one
// transaction.
func (r *pgDeviceRepository) CreateDevice(ctx context.Context, device *models.Device) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO devices (name, price, img_path, brand_id, type_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, rating, rating_count
	`
	err = tx.QueryRow(ctx, query,
		device.Name, device.Price, device.ImgPath, device.BrandID, device.TypeID,
	).Scan(&device.ID, &device.Rating, &device.RatingCount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				r.logger.Warn("Attempted to create duplicate device", zap.String("name", device.Name))
				return models.ErrAlreadyExists
			case "23503":
				r.logger.Warn("Attempted to create device with unknown brand or type",
					zap.String("name", device.Name), zap.String("constraint", pgErr.ConstraintName))
				return models.ErrNotFound
			}
		}
		r.logger.Error("Failed to create device in postgres", zap.Error(err), zap.String("name", device.Name))
		return fmt.Errorf("failed to create device: %w", err)
	}

	for i := range device.Info {
		info := &device.Info[i]
		info.DeviceID = device.ID
		infoQuery := `INSERT INTO device_info (device_id, title, description) VALUES ($1, $2, $3) RETURNING id`
		if err := tx.QueryRow(ctx, infoQuery, info.DeviceID, info.Title, info.Description).Scan(&info.ID); err != nil {
			r.logger.Error("Failed to create device info row", zap.Error(err), zap.String("deviceID", device.ID.String()))
			return fmt.Errorf("failed to create device info: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit device creation", zap.Error(err))
		return fmt.Errorf("failed to commit device creation: %w", err)
	}

	r.logger.Info("Device created successfully", zap.String("deviceID", device.ID.String()), zap.String("name", device.Name))
	return nil
}

// GetDeviceByID retrieves a device with its info and comments.
func (r *pgDeviceRepository) GetDeviceByID(ctx context.Context, id uuid.UUID) (*models.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = $1`
	device := &models.Device{}
	if err := scanDevice(r.pool.QueryRow(ctx, query, id), device); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Device not found by ID", zap.String("id", id.String()))
			return nil, models.ErrDeviceNotFound
		}
		r.logger.Error("Failed to get device by id from postgres", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get device by id: %w", err)
	}

	info, err := r.listInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	device.Info = info

	comments, err := r.listComments(ctx, id)
	if err != nil {
		return nil, err
	}
	device.Comments = comments

	return device, nil
}

func (r *pgDeviceRepository) listInfo(ctx context.Context, deviceID uuid.UUID) ([]models.DeviceInfo, error) {
	query := `SELECT id, device_id, title, description FROM device_info WHERE device_id = $1 ORDER BY title ASC`
	rows, err := r.pool.Query(ctx, query, deviceID)
	if err != nil {
		r.logger.Error("Failed to query device info", zap.Error(err), zap.String("deviceID", deviceID.String()))
		return nil, fmt.Errorf("failed to query device info: %w", err)
	}
	defer rows.Close()

	info := make([]models.DeviceInfo, 0)
	for rows.Next() {
		var i models.DeviceInfo
		if err := rows.Scan(&i.ID, &i.DeviceID, &i.Title, &i.Description); err != nil {
			r.logger.Error("Failed to scan device info row", zap.Error(err))
			continue
		}
		info = append(info, i)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating device info rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating device info rows: %w", err)
	}
	return info, nil
}

func (r *pgDeviceRepository) listComments(ctx context.Context, deviceID uuid.UUID) ([]models.DeviceComment, error) {
	query := `
		SELECT id, device_id, user_id, username, feedback, rating, created_at
		FROM device_comments WHERE device_id = $1 ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, deviceID)
	if err != nil {
		r.logger.Error("Failed to query device comments", zap.Error(err), zap.String("deviceID", deviceID.String()))
		return nil, fmt.Errorf("failed to query device comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.DeviceComment, 0)
	for rows.Next() {
		var c models.DeviceComment
		if err := rows.Scan(&c.ID, &c.DeviceID, &c.UserID, &c.Username, &c.Feedback, &c.Rating, &c.CreatedAt); err != nil {
			r.logger.Error("Failed to scan device comment row", zap.Error(err))
			continue
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating device comment rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating device comment rows: %w", err)
	}
	return comments, nil
}

// ListDevices returns a filtered page of devices plus the total count.
func (r *pgDeviceRepository) ListDevices(ctx context.Context, filter DeviceFilter) (*models.DevicePage, error) {
	where := ""
	args := []interface{}{}
	argID := 1

	if filter.BrandID != nil {
		where += fmt.Sprintf(" AND brand_id = $%d", argID)
		args = append(args, *filter.BrandID)
		argID++
	}
	if filter.TypeID != nil {
		where += fmt.Sprintf(" AND type_id = $%d", argID)
		args = append(args, *filter.TypeID)
		argID++
	}

	countQuery := `SELECT COUNT(*) FROM devices WHERE TRUE` + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count devices", zap.Error(err))
		return nil, fmt.Errorf("failed to count devices: %w", err)
	}

	listQuery := `SELECT ` + deviceColumns + ` FROM devices WHERE TRUE` + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	r.logger.Debug("Executing query", zap.String("query", listQuery), zap.Int("limit", filter.Limit), zap.Int("offset", filter.Offset))
	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Error("Failed to query devices from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	devices := make([]models.Device, 0)
	for rows.Next() {
		var d models.Device
		if err := scanDevice(rows, &d); err != nil {
			r.logger.Error("Failed to scan device row", zap.Error(err))
			continue
		}
		devices = append(devices, d)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating device rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating device rows: %w", err)
	}

	return &models.DevicePage{Count: total, Rows: devices}, nil
}

// UpdateDevice applies a partial update. Nil fields are left untouched; a
// non-nil Info slice replaces all existing info rows.
func (r *pgDeviceRepository) UpdateDevice(ctx context.Context, id uuid.UUID, update DeviceUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	queryBase := "UPDATE devices SET id = id"
	args := []interface{}{}
	argID := 1

	if update.Name != nil {
		queryBase += fmt.Sprintf(", name = $%d", argID)
		args = append(args, *update.Name)
		argID++
	}
	if update.Price != nil {
		queryBase += fmt.Sprintf(", price = $%d", argID)
		args = append(args, *update.Price)
		argID++
	}
	if update.BrandID != nil {
		queryBase += fmt.Sprintf(", brand_id = $%d", argID)
		args = append(args, *update.BrandID)
		argID++
	}
	if update.TypeID != nil {
		queryBase += fmt.Sprintf(", type_id = $%d", argID)
		args = append(args, *update.TypeID)
		argID++
	}
	if update.ImgPath != nil {
		queryBase += fmt.Sprintf(", img_path = $%d", argID)
		args = append(args, *update.ImgPath)
		argID++
	}

	if len(args) > 0 {
		query := queryBase + fmt.Sprintf(" WHERE id = $%d", argID)
		args = append(args, id)

		r.logger.Debug("Executing update device query", zap.String("query", query), zap.String("deviceID", id.String()))
		cmdTag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				r.logger.Warn("Attempted to update device with duplicate name", zap.String("deviceID", id.String()))
				return models.ErrAlreadyExists
			}
			r.logger.Error("Failed to update device in postgres", zap.Error(err), zap.String("deviceID", id.String()))
			return fmt.Errorf("failed to update device: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			r.logger.Warn("Attempted to update non-existent device", zap.String("deviceID", id.String()))
			return models.ErrDeviceNotFound
		}
	}

	if update.Info != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM device_info WHERE device_id = $1`, id); err != nil {
			r.logger.Error("Failed to clear device info rows", zap.Error(err), zap.String("deviceID", id.String()))
			return fmt.Errorf("failed to clear device info: %w", err)
		}
		for _, info := range update.Info {
			infoQuery := `INSERT INTO device_info (device_id, title, description) VALUES ($1, $2, $3)`
			if _, err := tx.Exec(ctx, infoQuery, id, info.Title, info.Description); err != nil {
				r.logger.Error("Failed to insert device info row", zap.Error(err), zap.String("deviceID", id.String()))
				return fmt.Errorf("failed to insert device info: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit device update", zap.Error(err))
		return fmt.Errorf("failed to commit device update: %w", err)
	}

	r.logger.Info("Device updated successfully", zap.String("deviceID", id.String()))
	return nil
}

// DeleteDevice removes a device. Info rows, ratings, comments and basket
// entries are removed by ON DELETE CASCADE; basket totals are adjusted by a
// trigger-free recount in the same transaction.
func (r *pgDeviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Снимаем стоимость удаляемого устройства со всех корзин, где оно лежит
	adjustQuery := `
		UPDATE baskets b
		SET total_cost = b.total_cost - sub.cnt * d.price
		FROM (
			SELECT basket_id, COUNT(*) AS cnt
			FROM basket_devices
			WHERE device_id = $1
			GROUP BY basket_id
		) sub, devices d
		WHERE b.id = sub.basket_id AND d.id = $1
	`
	if _, err := tx.Exec(ctx, adjustQuery, id); err != nil {
		r.logger.Error("Failed to adjust basket totals for deleted device", zap.Error(err), zap.String("deviceID", id.String()))
		return fmt.Errorf("failed to adjust basket totals: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete device from postgres", zap.Error(err), zap.String("deviceID", id.String()))
		return fmt.Errorf("failed to delete device: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent device", zap.String("deviceID", id.String()))
		return models.ErrDeviceNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit device deletion", zap.Error(err))
		return fmt.Errorf("failed to commit device deletion: %w", err)
	}

	r.logger.Info("Device deleted successfully", zap.String("deviceID", id.String()))
	return nil
}

// AddRating records the user's rating and recomputes the stored average and
// count in the same transaction. One rating per user per device.
func (r *pgDeviceRepository) AddRating(ctx context.Context, deviceID, userID uuid.UUID, rating int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `INSERT INTO ratings (device_id, user_id, rating) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, insertQuery, deviceID, userID, rating); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				r.logger.Warn("User already rated device",
					zap.String("deviceID", deviceID.String()), zap.String("userID", userID.String()))
				return models.ErrRatingExists
			case "23503":
				r.logger.Warn("Attempted to rate non-existent device", zap.String("deviceID", deviceID.String()))
				return models.ErrDeviceNotFound
			}
		}
		r.logger.Error("Failed to insert rating in postgres", zap.Error(err), zap.String("deviceID", deviceID.String()))
		return fmt.Errorf("failed to insert rating: %w", err)
	}

	recomputeQuery := `
		UPDATE devices d
		SET rating = sub.avg_rating, rating_count = sub.cnt
		FROM (
			SELECT ROUND(AVG(rating)::numeric, 1) AS avg_rating, COUNT(*) AS cnt
			FROM ratings WHERE device_id = $1
		) sub
		WHERE d.id = $1
	`
	if _, err := tx.Exec(ctx, recomputeQuery, deviceID); err != nil {
		r.logger.Error("Failed to recompute device rating", zap.Error(err), zap.String("deviceID", deviceID.String()))
		return fmt.Errorf("failed to recompute device rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit rating", zap.Error(err))
		return fmt.Errorf("failed to commit rating: %w", err)
	}

	r.logger.Info("Rating recorded",
		zap.String("deviceID", deviceID.String()),
		zap.String("userID", userID.String()),
		zap.Int("rating", rating),
	)
	return nil
}

// GetUserRating returns the rating the user gave the device, 0 if none.
func (r *pgDeviceRepository) GetUserRating(ctx context.Context, deviceID, userID uuid.UUID) (int, error) {
	query := `SELECT rating FROM ratings WHERE device_id = $1 AND user_id = $2`
	var rating int
	err := r.pool.QueryRow(ctx, query, deviceID, userID).Scan(&rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		r.logger.Error("Failed to get user rating from postgres", zap.Error(err), zap.String("deviceID", deviceID.String()))
		return 0, fmt.Errorf("failed to get user rating: %w", err)
	}
	return rating, nil
}

// AddComment stores a new comment for the device.
func (r *pgDeviceRepository) AddComment(ctx context.Context, comment *models.DeviceComment) error {
	query := `
		INSERT INTO device_comments (device_id, user_id, username, feedback, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		comment.DeviceID, comment.UserID, comment.Username, comment.Feedback, comment.Rating,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			r.logger.Warn("Attempted to comment non-existent device", zap.String("deviceID", comment.DeviceID.String()))
			return models.ErrDeviceNotFound
		}
		r.logger.Error("Failed to add device comment in postgres", zap.Error(err), zap.String("deviceID", comment.DeviceID.String()))
		return fmt.Errorf("failed to add device comment: %w", err)
	}
	r.logger.Info("Device comment added", zap.String("commentID", comment.ID.String()), zap.String("deviceID", comment.DeviceID.String()))
	return nil
}
