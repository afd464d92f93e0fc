package service

import (
	"context"
	"mime/multipart"

	"music-store-server/internal/shared/auth"
	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
)

// RegisterInput - входные данные регистрации.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginResult - результат успешного входа или обновления токенов.
type LoginResult struct {
	User   *models.User
	Tokens auth.TokenPair
}

// AuthService описывает операции аутентификации музыкального сервиса.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Activate(ctx context.Context, link string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	Logout(ctx context.Context, refreshToken string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// CreateTrackInput - входные данные создания трека.
type CreateTrackInput struct {
	Name    string
	Artist  string
	Audio   *multipart.FileHeader
	Picture *multipart.FileHeader
	AddedBy uuid.UUID
}

// TrackService описывает операции каталога треков.
type TrackService interface {
	Create(ctx context.Context, input CreateTrackInput) (*models.Track, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Track, error)
	List(ctx context.Context, offset, count int) (*models.TrackPage, error)
	Search(ctx context.Context, query string) ([]models.Track, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
	Listen(ctx context.Context, id uuid.UUID) error
	AddComment(ctx context.Context, trackID uuid.UUID, userEmail, text string) (*models.TrackComment, error)
	DeleteComment(ctx context.Context, trackID, commentID uuid.UUID) error
}
