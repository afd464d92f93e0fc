package repository

import (
	"context"

	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
)

// UserRepository определяет доступ к пользователям музыкального сервиса.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByActivationLink(ctx context.Context, link string) (*models.User, error)
	ActivateUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// TrackRepository определяет доступ к трекам и их комментариям.
type TrackRepository interface {
	CreateTrack(ctx context.Context, track *models.Track) error
	GetTrackByID(ctx context.Context, id uuid.UUID) (*models.Track, error)
	ListTracks(ctx context.Context, offset, count int) (*models.TrackPage, error)
	SearchTracks(ctx context.Context, query string) ([]models.Track, error)
	DeleteTrack(ctx context.Context, id uuid.UUID) error
	IncrementListens(ctx context.Context, id uuid.UUID) error
	AddComment(ctx context.Context, comment *models.TrackComment) error
	DeleteComment(ctx context.Context, trackID, commentID uuid.UUID) error
}
