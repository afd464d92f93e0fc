package mocks

import (
	"context"

	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) GetUserByActivationLink(ctx context.Context, link string) (*models.User, error) {
	args := m.Called(ctx, link)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) ActivateUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	var users []models.User
	if args.Get(0) != nil {
		users = args.Get(0).([]models.User)
	}
	return users, args.Error(1)
}

// Mock TrackRepository
type TrackRepository struct {
	mock.Mock
}

func (m *TrackRepository) CreateTrack(ctx context.Context, track *models.Track) error {
	args := m.Called(ctx, track)
	return args.Error(0)
}

func (m *TrackRepository) GetTrackByID(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	args := m.Called(ctx, id)
	var track *models.Track
	if args.Get(0) != nil {
		track = args.Get(0).(*models.Track)
	}
	return track, args.Error(1)
}

func (m *TrackRepository) ListTracks(ctx context.Context, offset, count int) (*models.TrackPage, error) {
	args := m.Called(ctx, offset, count)
	var page *models.TrackPage
	if args.Get(0) != nil {
		page = args.Get(0).(*models.TrackPage)
	}
	return page, args.Error(1)
}

func (m *TrackRepository) SearchTracks(ctx context.Context, query string) ([]models.Track, error) {
	args := m.Called(ctx, query)
	var tracks []models.Track
	if args.Get(0) != nil {
		tracks = args.Get(0).([]models.Track)
	}
	return tracks, args.Error(1)
}

func (m *TrackRepository) DeleteTrack(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TrackRepository) IncrementListens(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TrackRepository) AddComment(ctx context.Context, comment *models.TrackComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *TrackRepository) DeleteComment(ctx context.Context, trackID, commentID uuid.UUID) error {
	args := m.Called(ctx, trackID, commentID)
	return args.Error(0)
}
