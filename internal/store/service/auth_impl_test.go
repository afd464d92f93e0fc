package service_test

import (
	"context"
	"testing"
	"time"

	"music-store-server/internal/shared/auth"
	sessionMocks "music-store-server/internal/shared/interfaces/mocks"
	publisherMocks "music-store-server/internal/shared/messaging/mocks"
	"music-store-server/internal/shared/models"
	repoMocks "music-store-server/internal/store/repository/mocks"
	"music-store-server/internal/store/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testAPIURL = "http://localhost:7000"

func newTestCodec(t *testing.T) *auth.Codec {
	t.Helper()
	codec, err := auth.NewCodec("store-access-secret", "store-refresh-secret", time.Hour, 24*time.Hour, "store-service")
	require.NoError(t, err)
	return codec
}

func newAuthService(users *repoMocks.UserRepository, sessions *sessionMocks.SessionStore, publisher *publisherMocks.ActivationPublisher, codec *auth.Codec) service.AuthService {
	return service.NewAuthService(users, sessions, auth.NewHasher(bcrypt.MinCost), codec, publisher, testAPIURL, zap.NewNop())
}

func TestRegisterCreatesBasket(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful registration", func(t *testing.T) {
		users := new(repoMocks.UserRepository)
		publisher := new(publisherMocks.ActivationPublisher)
		svc := newAuthService(users, new(sessionMocks.SessionStore), publisher, newTestCodec(t))

		basketID := uuid.New()
		users.On("CreateUserWithBasket", ctx, mock.MatchedBy(func(u *models.User) bool {
			assert.Equal(t, "user@example.com", u.Email)
			assert.Equal(t, "buyer", u.Username)
			assert.NotEqual(t, "password123", u.PasswordHash)
			assert.NotEmpty(t, u.ActivationLink)
			assert.False(t, u.IsActivated)
			return true
		})).Return(basketID, nil).Once()

		publisher.On("PublishActivation", ctx, "user@example.com", mock.MatchedBy(func(url string) bool {
			assert.Contains(t, url, testAPIURL+"/api/user/activate/")
			return true
		})).Return(nil).Once()

		user, err := svc.Register(ctx, service.RegisterInput{
			Email:    " User@Example.COM ",
			Username: " buyer ",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "buyer", user.Username)

		users.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		users := new(repoMocks.UserRepository)
		svc := newAuthService(users, new(sessionMocks.SessionStore), new(publisherMocks.ActivationPublisher), newTestCodec(t))

		users.On("CreateUserWithBasket", ctx, mock.Anything).Return(uuid.Nil, models.ErrUserAlreadyExists).Once()

		_, err := svc.Register(ctx, service.RegisterInput{Email: "a@b.c", Username: "taken", Password: "pw"})
		assert.ErrorIs(t, err, models.ErrUserAlreadyExists)
	})

	t.Run("Missing username", func(t *testing.T) {
		svc := newAuthService(new(repoMocks.UserRepository), new(sessionMocks.SessionStore), new(publisherMocks.ActivationPublisher), newTestCodec(t))

		_, err := svc.Register(ctx, service.RegisterInput{Email: "a@b.c", Username: "  ", Password: "pw"})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestLoginEmbedsBasketID(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		Username:     "buyer",
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActivated:  true,
	}
	basketID := uuid.New()

	t.Run("Successful login", func(t *testing.T) {
		users := new(repoMocks.UserRepository)
		sessions := new(sessionMocks.SessionStore)
		codec := newTestCodec(t)
		svc := newAuthService(users, sessions, new(publisherMocks.ActivationPublisher), codec)

		users.On("GetUserByUsername", ctx, "buyer").Return(storedUser, nil).Once()
		users.On("GetBasketIDByUserID", ctx, storedUser.ID).Return(basketID, nil).Once()
		sessions.On("Save", ctx, storedUser.ID, mock.AnythingOfType("string")).Return(nil).Once()

		result, err := svc.Login(ctx, " buyer ", "correct-password")
		require.NoError(t, err)

		// Токен несет идентификатор корзины пользователя
		claims, err := codec.VerifyAccess(result.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, basketID.String(), claims.BasketID)
		assert.Equal(t, "buyer", claims.Username)

		users.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("Wrong password", func(t *testing.T) {
		users := new(repoMocks.UserRepository)
		sessions := new(sessionMocks.SessionStore)
		svc := newAuthService(users, sessions, new(publisherMocks.ActivationPublisher), newTestCodec(t))

		users.On("GetUserByUsername", ctx, "buyer").Return(storedUser, nil).Once()

		_, err := svc.Login(ctx, "buyer", "wrong")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown username", func(t *testing.T) {
		users := new(repoMocks.UserRepository)
		svc := newAuthService(users, new(sessionMocks.SessionStore), new(publisherMocks.ActivationPublisher), newTestCodec(t))

		users.On("GetUserByUsername", ctx, "ghost").Return(nil, models.ErrUserNotFound).Once()

		_, err := svc.Login(ctx, "ghost", "pw")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestRefreshRotatesStoreSession(t *testing.T) {
	ctx := context.Background()
	codec := newTestCodec(t)

	storedUser := &models.User{
		ID:          uuid.New(),
		Email:       "user@example.com",
		Username:    "buyer",
		Role:        models.RoleUser,
		IsActivated: true,
	}
	basketID := uuid.New()

	identity := auth.NewIdentity(storedUser)
	identity.BasketID = basketID.String()
	pair, err := codec.Issue(identity)
	require.NoError(t, err)

	t.Run("Valid refresh", func(t *testing.T) {
		users := new(repoMocks.UserRepository)
		sessions := new(sessionMocks.SessionStore)
		svc := newAuthService(users, sessions, new(publisherMocks.ActivationPublisher), codec)

		sessions.On("FindByToken", ctx, pair.RefreshToken).
			Return(&models.Session{UserID: storedUser.ID, RefreshToken: pair.RefreshToken}, nil).Once()
		users.On("GetUserByID", ctx, storedUser.ID).Return(storedUser, nil).Once()
		users.On("GetBasketIDByUserID", ctx, storedUser.ID).Return(basketID, nil).Once()
		sessions.On("Save", ctx, storedUser.ID, mock.AnythingOfType("string")).Return(nil).Once()

		result, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, result.Tokens.RefreshToken)

		claims, err := codec.VerifyAccess(result.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, basketID.String(), claims.BasketID)
	})

	t.Run("Revoked session", func(t *testing.T) {
		sessions := new(sessionMocks.SessionStore)
		svc := newAuthService(new(repoMocks.UserRepository), sessions, new(publisherMocks.ActivationPublisher), codec)

		sessions.On("FindByToken", ctx, pair.RefreshToken).Return(nil, models.ErrSessionNotFound).Once()

		_, err := svc.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	users := new(repoMocks.UserRepository)
	svc := newAuthService(users, new(sessionMocks.SessionStore), new(publisherMocks.ActivationPublisher), newTestCodec(t))

	id := uuid.New()
	users.On("DeleteUser", ctx, id).Return(nil).Once()

	require.NoError(t, svc.DeleteUser(ctx, id))
	users.AssertExpectations(t)
}
