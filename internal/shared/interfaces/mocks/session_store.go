package mocks

import (
	"context"

	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock SessionStore
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Save(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	args := m.Called(ctx, userID, refreshToken)
	return args.Error(0)
}

func (m *SessionStore) FindByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	args := m.Called(ctx, refreshToken)
	var session *models.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*models.Session)
	}
	return session, args.Error(1)
}

func (m *SessionStore) DeleteByToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}
