package service

import (
	"context"
	"fmt"
	"strings"

	"music-store-server/internal/music/repository"
	"music-store-server/internal/shared/models"
	"music-store-server/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure trackServiceImpl implements TrackService
var _ TrackService = (*trackServiceImpl)(nil)

type trackServiceImpl struct {
	tracks repository.TrackRepository
	files  storage.FileStore
	logger *zap.Logger
}

// NewTrackService creates the track catalog service.
func NewTrackService(tracks repository.TrackRepository, files storage.FileStore, logger *zap.Logger) TrackService {
	return &trackServiceImpl{
		tracks: tracks,
		files:  files,
		logger: logger.Named("TrackService"),
	}
}

// Create stores the uploaded audio and picture on disk and inserts the track.
func (s *trackServiceImpl) Create(ctx context.Context, input CreateTrackInput) (*models.Track, error) {
	name := strings.TrimSpace(input.Name)
	artist := strings.TrimSpace(input.Artist)
	if name == "" || artist == "" {
		return nil, fmt.Errorf("validation error: name and artist are required: %w", models.ErrInvalidInput)
	}
	if input.Audio == nil || input.Picture == nil {
		return nil, fmt.Errorf("validation error: audio file and picture are required: %w", models.ErrInvalidInput)
	}

	audioPath, err := s.files.Save(input.Audio, "audio")
	if err != nil {
		return nil, err
	}
	picturePath, err := s.files.Save(input.Picture, "image")
	if err != nil {
		_ = s.files.Remove(audioPath)
		return nil, err
	}

	track := &models.Track{
		Name:        name,
		Artist:      artist,
		AudioPath:   audioPath,
		PicturePath: picturePath,
		AddedBy:     input.AddedBy,
	}
	if err := s.tracks.CreateTrack(ctx, track); err != nil {
		// Строка не записалась, файлы не должны остаться на диске
		_ = s.files.Remove(audioPath)
		_ = s.files.Remove(picturePath)
		return nil, err
	}
	return track, nil
}

// Get returns a track with its comments.
func (s *trackServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	return s.tracks.GetTrackByID(ctx, id)
}

// List returns a page of tracks.
func (s *trackServiceImpl) List(ctx context.Context, offset, count int) (*models.TrackPage, error) {
	return s.tracks.ListTracks(ctx, offset, count)
}

// Search returns tracks whose name contains the query.
func (s *trackServiceImpl) Search(ctx context.Context, query string) ([]models.Track, error) {
	return s.tracks.SearchTracks(ctx, query)
}

// Delete removes a track, its media files and (via cascade) its comments.
// Only the user who uploaded the track may delete it.
func (s *trackServiceImpl) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	track, err := s.tracks.GetTrackByID(ctx, id)
	if err != nil {
		return err
	}
	if track.AddedBy != callerID {
		s.logger.Warn("Delete attempt by non-owner",
			zap.String("trackID", id.String()),
			zap.String("callerID", callerID.String()),
		)
		return models.ErrForbidden
	}

	if err := s.tracks.DeleteTrack(ctx, id); err != nil {
		return err
	}
	// Файлы убираем после строки: осиротевший файл безобиднее битой ссылки
	_ = s.files.Remove(track.AudioPath)
	_ = s.files.Remove(track.PicturePath)
	return nil
}

// Listen increments the listen counter.
func (s *trackServiceImpl) Listen(ctx context.Context, id uuid.UUID) error {
	return s.tracks.IncrementListens(ctx, id)
}

// AddComment records a comment under the caller's email.
func (s *trackServiceImpl) AddComment(ctx context.Context, trackID uuid.UUID, userEmail, text string) (*models.TrackComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("validation error: comment text is required: %w", models.ErrInvalidInput)
	}
	comment := &models.TrackComment{
		TrackID:   trackID,
		UserEmail: userEmail,
		Text:      text,
	}
	if err := s.tracks.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment from a track.
func (s *trackServiceImpl) DeleteComment(ctx context.Context, trackID, commentID uuid.UUID) error {
	return s.tracks.DeleteComment(ctx, trackID, commentID)
}
