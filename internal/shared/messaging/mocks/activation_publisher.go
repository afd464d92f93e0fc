package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock ActivationPublisher
type ActivationPublisher struct {
	mock.Mock
}

func (m *ActivationPublisher) PublishActivation(ctx context.Context, email, activationURL string) error {
	args := m.Called(ctx, email, activationURL)
	return args.Error(0)
}

func (m *ActivationPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
