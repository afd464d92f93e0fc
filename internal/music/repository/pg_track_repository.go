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

// Compile-time check to ensure pgTrackRepository implements TrackRepository
var _ TrackRepository = (*pgTrackRepository)(nil)

type pgTrackRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgTrackRepository creates a new PostgreSQL-backed TrackRepository.
func NewPgTrackRepository(db interfaces.DBTX, logger *zap.Logger) TrackRepository {
	return &pgTrackRepository{
		db:     db,
		logger: logger.Named("PgTrackRepo"),
	}
}

const trackColumns = `id, name, artist, listens, audio_path, picture_path, added_by, created_at`

func scanTrack(row pgx.Row, track *models.Track) error {
	return row.Scan(
		&track.ID, &track.Name, &track.Artist, &track.Listens,
		&track.AudioPath, &track.PicturePath, &track.AddedBy, &track.CreatedAt,
	)
}

// CreateTrack inserts a new track.
func (r *pgTrackRepository) CreateTrack(ctx context.Context, track *models.Track) error {
	query := `
		INSERT INTO tracks (name, artist, audio_path, picture_path, added_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, listens, created_at
	`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("name", track.Name))
	err := r.db.QueryRow(ctx, query,
		track.Name, track.Artist, track.AudioPath, track.PicturePath, track.AddedBy,
	).Scan(&track.ID, &track.Listens, &track.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create duplicate track", zap.String("name", track.Name))
			return models.ErrAlreadyExists
		}
		r.logger.Error("Failed to create track in postgres", zap.Error(err), zap.String("name", track.Name))
		return fmt.Errorf("failed to create track in postgres: %w", err)
	}
	r.logger.Info("Track created successfully", zap.String("trackID", track.ID.String()), zap.String("name", track.Name))
	return nil
}

// GetTrackByID retrieves a track together with its comments.
func (r *pgTrackRepository) GetTrackByID(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = $1`
	track := &models.Track{}
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("id", id.String()))
	if err := scanTrack(r.db.QueryRow(ctx, query, id), track); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Track not found by ID", zap.String("id", id.String()))
			return nil, models.ErrTrackNotFound
		}
		r.logger.Error("Failed to get track by id from postgres", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get track by id from postgres: %w", err)
	}

	comments, err := r.listComments(ctx, id)
	if err != nil {
		return nil, err
	}
	track.Comments = comments
	return track, nil
}

func (r *pgTrackRepository) listComments(ctx context.Context, trackID uuid.UUID) ([]models.TrackComment, error) {
	query := `
		SELECT id, track_id, user_email, text, created_at
		FROM track_comments WHERE track_id = $1 ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, trackID)
	if err != nil {
		r.logger.Error("Failed to query track comments", zap.Error(err), zap.String("trackID", trackID.String()))
		return nil, fmt.Errorf("failed to query track comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.TrackComment, 0)
	for rows.Next() {
		var c models.TrackComment
		if err := rows.Scan(&c.ID, &c.TrackID, &c.UserEmail, &c.Text, &c.CreatedAt); err != nil {
			r.logger.Error("Failed to scan comment row", zap.Error(err))
			continue
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating comment rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

// ListTracks returns a page of tracks plus the total count.
func (r *pgTrackRepository) ListTracks(ctx context.Context, offset, count int) (*models.TrackPage, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tracks`).Scan(&total); err != nil {
		r.logger.Error("Failed to count tracks", zap.Error(err))
		return nil, fmt.Errorf("failed to count tracks: %w", err)
	}

	query := `SELECT ` + trackColumns + ` FROM tracks ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int("offset", offset), zap.Int("count", count))
	rows, err := r.db.Query(ctx, query, offset, count)
	if err != nil {
		r.logger.Error("Failed to query tracks from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	tracks, err := r.collectTracks(rows)
	if err != nil {
		return nil, err
	}
	return &models.TrackPage{Tracks: tracks, Total: total}, nil
}

// SearchTracks returns tracks whose name contains the query, case-insensitively.
func (r *pgTrackRepository) SearchTracks(ctx context.Context, query string) ([]models.Track, error) {
	sql := `SELECT ` + trackColumns + ` FROM tracks WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at DESC`
	r.logger.Debug("Executing query", zap.String("query", sql), zap.String("search", query))
	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		r.logger.Error("Failed to search tracks in postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to search tracks: %w", err)
	}
	defer rows.Close()
	return r.collectTracks(rows)
}

func (r *pgTrackRepository) collectTracks(rows pgx.Rows) ([]models.Track, error) {
	tracks := make([]models.Track, 0)
	for rows.Next() {
		var track models.Track
		if err := scanTrack(rows, &track); err != nil {
			r.logger.Error("Failed to scan track row", zap.Error(err))
			continue
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating track rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating track rows: %w", err)
	}
	return tracks, nil
}

// DeleteTrack removes a track. Comments are removed by ON DELETE CASCADE.
func (r *pgTrackRepository) DeleteTrack(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tracks WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("id", id.String()))
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete track from postgres", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to delete track: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent track", zap.String("id", id.String()))
		return models.ErrTrackNotFound
	}
	r.logger.Info("Track deleted successfully", zap.String("trackID", id.String()))
	return nil
}

// IncrementListens bumps the listen counter.
func (r *pgTrackRepository) IncrementListens(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE tracks SET listens = listens + 1 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to increment listens in postgres", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to increment listens: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrTrackNotFound
	}
	return nil
}

// AddComment stores a new comment for the track.
func (r *pgTrackRepository) AddComment(ctx context.Context, comment *models.TrackComment) error {
	query := `
		INSERT INTO track_comments (track_id, user_email, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("trackID", comment.TrackID.String()))
	err := r.db.QueryRow(ctx, query, comment.TrackID, comment.UserEmail, comment.Text).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 - нарушение внешнего ключа: трека не существует
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			r.logger.Warn("Attempted to comment non-existent track", zap.String("trackID", comment.TrackID.String()))
			return models.ErrTrackNotFound
		}
		r.logger.Error("Failed to add comment in postgres", zap.Error(err), zap.String("trackID", comment.TrackID.String()))
		return fmt.Errorf("failed to add comment: %w", err)
	}
	r.logger.Info("Comment added successfully", zap.String("commentID", comment.ID.String()), zap.String("trackID", comment.TrackID.String()))
	return nil
}

// DeleteComment removes a comment from the track.
func (r *pgTrackRepository) DeleteComment(ctx context.Context, trackID, commentID uuid.UUID) error {
	query := `DELETE FROM track_comments WHERE id = $1 AND track_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, commentID, trackID)
	if err != nil {
		r.logger.Error("Failed to delete comment from postgres", zap.Error(err), zap.String("commentID", commentID.String()))
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent comment", zap.String("commentID", commentID.String()))
		return models.ErrCommentNotFound
	}
	r.logger.Info("Comment deleted successfully", zap.String("commentID", commentID.String()))
	return nil
}
