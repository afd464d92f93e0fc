package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"music-store-server/internal/music/repository"
	"music-store-server/internal/music/service"
	"music-store-server/internal/shared/auth"
	"music-store-server/internal/shared/database"
	"music-store-server/internal/shared/interfaces"
	publisherMocks "music-store-server/internal/shared/messaging/mocks"
	"music-store-server/internal/shared/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	// Докер клиент для проверки доступности
	"github.com/docker/docker/client"
)

// AuthIntegrationTestSuite гоняет сервис аутентификации против настоящих
// PostgreSQL и Redis в контейнерах.
type AuthIntegrationTestSuite struct {
	suite.Suite
	ctx          context.Context
	pgContainer  *postgres.PostgresContainer
	rdContainer  *tcredis.RedisContainer
	pgPool       *pgxpool.Pool
	redisClient  *redis.Client
	sessionStore interfaces.SessionStore
	publisher    *publisherMocks.ActivationPublisher
	authService  service.AuthService
	logger       *zap.Logger
}

func (s *AuthIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")
	s.logger.Info("Setting up integration test suite...")

	// Контейнер PostgreSQL
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	// Миграции из встроенной файловой системы сервиса
	err = database.ApplyMigrations(s.pgPool, repository.MigrationsFS, repository.MigrationsPath)
	require.NoError(s.T(), err, "Failed to run migrations")
	s.logger.Info("Database migrations applied")

	// Контейнер Redis
	s.rdContainer, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")

	redisHost, err := s.rdContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	redisPort, err := s.rdContainer.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)
	redisAddr := fmt.Sprintf("%s:%s", redisHost, redisPort.Port())

	s.redisClient = redis.NewClient(&redis.Options{Addr: redisAddr})
	_, err = s.redisClient.Ping(s.ctx).Result()
	require.NoError(s.T(), err, "Failed to connect to test redis")

	// Зависимости сервиса
	codec, err := auth.NewCodec("it-access-secret", "it-refresh-secret", 5*time.Minute, 10*time.Minute, "music-service")
	require.NoError(s.T(), err)

	userRepo := repository.NewPgUserRepository(s.pgPool, s.logger)
	s.sessionStore = database.NewRedisSessionStore(s.redisClient, 10*time.Minute, s.logger)

	s.publisher = new(publisherMocks.ActivationPublisher)
	s.publisher.On("PublishActivation", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	s.authService = service.NewAuthService(
		userRepo, s.sessionStore,
		auth.NewHasher(bcrypt.MinCost), codec,
		s.publisher, "http://localhost:5000", s.logger,
	)

	s.logger.Info("Test suite setup complete.")
}

func (s *AuthIntegrationTestSuite) TearDownSuite() {
	s.logger.Info("Tearing down integration test suite...")
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
	if s.rdContainer != nil {
		if err := s.rdContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate redis container", zap.Error(err))
		}
	}
}

// Перед каждым тестом очищаем Redis и таблицы БД
func (s *AuthIntegrationTestSuite) SetupTest() {
	err := s.redisClient.FlushDB(s.ctx).Err()
	require.NoError(s.T(), err, "Failed to flush Redis DB")

	_, err = s.pgPool.Exec(s.ctx, "TRUNCATE TABLE users RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate users table")
}

// TestAuthIntegrationTestSuite запускает набор тестов
func TestAuthIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Fatalf("Docker client init error: %v. Ensure Docker is running and accessible.", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Fatalf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(AuthIntegrationTestSuite))
}

// --- Сами Тестовые Функции ---

func (s *AuthIntegrationTestSuite) TestRegisterAndLogin_Success() {
	t := s.T()
	ctx := context.Background()
	email := "listener@example.com"
	password := "password123"

	// 1. Регистрация
	registered, err := s.authService.Register(ctx, service.RegisterInput{Email: email, Password: password})
	require.NoError(t, err, "Register should succeed")
	require.NotNil(t, registered)
	require.Equal(t, email, registered.Email)
	require.NotZero(t, registered.ID, "User ID should be assigned")
	require.False(t, registered.IsActivated)
	require.NotEmpty(t, registered.ActivationLink)

	// Повторная регистрация с тем же email - ошибка
	_, err = s.authService.Register(ctx, service.RegisterInput{Email: email, Password: "other"})
	require.ErrorIs(t, err, models.ErrEmailAlreadyExists)

	// 2. Активация по ссылке
	require.NoError(t, s.authService.Activate(ctx, registered.ActivationLink))
	// Повторная активация - no-op
	require.NoError(t, s.authService.Activate(ctx, registered.ActivationLink))

	// 3. Логин
	result, err := s.authService.Login(ctx, email, password)
	require.NoError(t, err, "Login should succeed")
	require.NotEmpty(t, result.Tokens.AccessToken)
	require.NotEmpty(t, result.Tokens.RefreshToken)
	require.True(t, result.User.IsActivated, "Login after activation should report the activated state")

	// Сессия лежит в Redis
	session, err := s.sessionStore.FindByToken(ctx, result.Tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, session.UserID)

	// 4. Неверный пароль
	_, err = s.authService.Login(ctx, email, "wrong-password")
	require.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func (s *AuthIntegrationTestSuite) TestRefresh_RotatesSession() {
	t := s.T()
	ctx := context.Background()

	registered, err := s.authService.Register(ctx, service.RegisterInput{Email: "rotate@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, s.authService.Activate(ctx, registered.ActivationLink))

	loginResult, err := s.authService.Login(ctx, "rotate@example.com", "pw")
	require.NoError(t, err)
	oldRefresh := loginResult.Tokens.RefreshToken

	// Ротация выдает новый токен
	refreshed, err := s.authService.Refresh(ctx, oldRefresh)
	require.NoError(t, err)
	require.NotEqual(t, oldRefresh, refreshed.Tokens.RefreshToken)

	// Старый refresh-токен больше не принимается
	_, err = s.authService.Refresh(ctx, oldRefresh)
	require.ErrorIs(t, err, models.ErrUnauthorized, "Old refresh token must be revoked after rotation")

	// Новый работает
	_, err = s.authService.Refresh(ctx, refreshed.Tokens.RefreshToken)
	require.NoError(t, err)
}

func (s *AuthIntegrationTestSuite) TestLogout_RevokesSession() {
	t := s.T()
	ctx := context.Background()

	registered, err := s.authService.Register(ctx, service.RegisterInput{Email: "logout@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, s.authService.Activate(ctx, registered.ActivationLink))

	loginResult, err := s.authService.Login(ctx, "logout@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, s.authService.Logout(ctx, loginResult.Tokens.RefreshToken))

	// После выхода refresh невозможен
	_, err = s.authService.Refresh(ctx, loginResult.Tokens.RefreshToken)
	require.ErrorIs(t, err, models.ErrUnauthorized)

	// Повторный logout с тем же токеном - не ошибка
	require.NoError(t, s.authService.Logout(ctx, loginResult.Tokens.RefreshToken))
}

func (s *AuthIntegrationTestSuite) TestSecondLogin_ReplacesSession() {
	t := s.T()
	ctx := context.Background()

	registered, err := s.authService.Register(ctx, service.RegisterInput{Email: "single@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, s.authService.Activate(ctx, registered.ActivationLink))

	first, err := s.authService.Login(ctx, "single@example.com", "pw")
	require.NoError(t, err)
	second, err := s.authService.Login(ctx, "single@example.com", "pw")
	require.NoError(t, err)

	// На пользователя хранится одна сессия: первый токен вытеснен вторым
	_, err = s.sessionStore.FindByToken(ctx, first.Tokens.RefreshToken)
	require.ErrorIs(t, err, models.ErrSessionNotFound)

	session, err := s.sessionStore.FindByToken(ctx, second.Tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, session.UserID)
}

func (s *AuthIntegrationTestSuite) TestConcurrentLogins_SingleLiveSession() {
	t := s.T()
	ctx := context.Background()

	registered, err := s.authService.Register(ctx, service.RegisterInput{Email: "parallel@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, s.authService.Activate(ctx, registered.ActivationLink))

	// Одновременные логины с разных устройств: вытеснение старой сессии
	// атомарно, поэтому жить должен ровно один refresh-токен.
	const logins = 8
	tokens := make([]string, logins)
	var wg sync.WaitGroup
	wg.Add(logins)
	for i := 0; i < logins; i++ {
		go func(i int) {
			defer wg.Done()
			result, err := s.authService.Login(ctx, "parallel@example.com", "pw")
			if err == nil {
				tokens[i] = result.Tokens.RefreshToken
			}
		}(i)
	}
	wg.Wait()

	live := 0
	for _, token := range tokens {
		require.NotEmpty(t, token, "all concurrent logins should succeed")
		if _, err := s.sessionStore.FindByToken(ctx, token); err == nil {
			live++
		}
	}
	require.Equal(t, 1, live, "exactly one refresh token must survive concurrent logins")
}
