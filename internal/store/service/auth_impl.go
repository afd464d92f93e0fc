package service

import (
	"context"
	"fmt"
	"strings"

	"music-store-server/internal/shared/auth"
	"music-store-server/internal/shared/interfaces"
	"music-store-server/internal/shared/messaging"
	"music-store-server/internal/shared/models"
	"music-store-server/internal/store/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	users     repository.UserRepository
	sessions  interfaces.SessionStore
	hasher    *auth.Hasher
	codec     *auth.Codec
	publisher messaging.ActivationPublisher
	apiURL    string
	logger    *zap.Logger
}

// NewAuthService creates the store auth service.
func NewAuthService(
	users repository.UserRepository,
	sessions interfaces.SessionStore,
	hasher *auth.Hasher,
	codec *auth.Codec,
	publisher messaging.ActivationPublisher,
	apiURL string,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		users:     users,
		sessions:  sessions,
		hasher:    hasher,
		codec:     codec,
		publisher: publisher,
		apiURL:    apiURL,
		logger:    logger.Named("AuthService"),
	}
}

// Register creates an unactivated user with a basket and publishes the
// activation email.
func (s *authServiceImpl) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)
	if email == "" || username == "" || input.Password == "" {
		return nil, fmt.Errorf("validation error: email, username and password are required: %w", models.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:          email,
		Username:       username,
		PasswordHash:   hash,
		Role:           models.RoleUser,
		IsActivated:    false,
		ActivationLink: uuid.NewString(),
	}
	if _, err := s.users.CreateUserWithBasket(ctx, user); err != nil {
		return nil, err
	}

	activationURL := fmt.Sprintf("%s/api/user/activate/%s", s.apiURL, user.ActivationLink)
	if err := s.publisher.PublishActivation(ctx, user.Email, activationURL); err != nil {
		s.logger.Error("Failed to publish activation email", zap.Error(err), zap.String("email", user.Email))
	}

	s.logger.Info("User registered", zap.String("userID", user.ID.String()), zap.String("username", user.Username))
	return user, nil
}

// Activate marks the user behind the link as activated. A repeated
// activation is a no-op.
func (s *authServiceImpl) Activate(ctx context.Context, link string) error {
	user, err := s.users.GetUserByActivationLink(ctx, link)
	if err != nil {
		return err
	}
	if user.IsActivated {
		s.logger.Debug("User already activated", zap.String("userID", user.ID.String()))
		return nil
	}
	return s.users.ActivateUser(ctx, user.ID)
}

// Login verifies credentials, issues a token pair carrying the user's basket
// ID and stores the session.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if err == models.ErrUserNotFound {
			s.logger.Debug("Login attempt for unknown username", zap.String("username", username))
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug("Login attempt with wrong password", zap.String("username", username))
		return nil, models.ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

// Refresh rotates the session.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.FindByToken(ctx, refreshToken); err != nil {
		if err == models.ErrSessionNotFound {
			s.logger.Debug("Refresh attempt with revoked or unknown session", zap.String("userID", claims.UserID.String()))
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if err == models.ErrUserNotFound {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	return s.issueSession(ctx, user)
}

// Logout drops the session record. Unknown tokens are ignored.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.DeleteByToken(ctx, refreshToken)
}

// DeleteUser removes a user account. Admin operation.
func (s *authServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.DeleteUser(ctx, id)
}

func (s *authServiceImpl) issueSession(ctx context.Context, user *models.User) (*LoginResult, error) {
	identity := auth.NewIdentity(user)

	basketID, err := s.users.GetBasketIDByUserID(ctx, user.ID)
	if err != nil {
		// Корзина создается вместе с пользователем; отсутствие - повод для 500
		return nil, fmt.Errorf("failed to resolve basket for user %s: %w", user.ID, err)
	}
	identity.BasketID = basketID.String()

	pair, err := s.codec.Issue(identity)
	if err != nil {
		s.logger.Error("Failed to issue token pair", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}
	if err := s.sessions.Save(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	s.logger.Info("Session issued", zap.String("userID", user.ID.String()))
	return &LoginResult{User: user, Tokens: *pair}, nil
}
