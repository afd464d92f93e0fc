package database

import (
	"context"
	"fmt"
	"time"

	"music-store-server/internal/shared/interfaces"
	"music-store-server/internal/shared/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure redisSessionStore implements SessionStore
var _ interfaces.SessionStore = (*redisSessionStore)(nil)

const (
	sessionUserPrefix  = "session_user:"
	sessionTokenPrefix = "session_token:"
)

// saveSessionScript атомарно заменяет сессию пользователя: удаляет обратный
// ключ предыдущего токена и записывает обе новые пары за один шаг. Без
// скрипта два параллельных логина читают один и тот же старый токен и
// каждый оставляет свой живой session_token-ключ.
//
// KEYS[1] - session_user:{userID}, KEYS[2] - session_token:{newToken}
// ARGV[1] - новый токен, ARGV[2] - userID, ARGV[3] - TTL в миллисекундах
var saveSessionScript = redis.NewScript(`
local old = redis.call('GET', KEYS[1])
if old and old ~= ARGV[1] then
    redis.call('DEL', '` + sessionTokenPrefix + `' .. old)
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// deleteSessionScript атомарно удаляет обратный ключ токена и, если
// forward-ключ пользователя всё ещё указывает на этот токен, удаляет и его.
// Возвращает userID удалённой сессии или пустую строку, если токена нет.
//
// KEYS[1] - session_token:{token}, ARGV[1] - токен
var deleteSessionScript = redis.NewScript(`
local uid = redis.call('GET', KEYS[1])
if not uid then
    return ''
end
redis.call('DEL', KEYS[1])
local ukey = '` + sessionUserPrefix + `' .. uid
if redis.call('GET', ukey) == ARGV[1] then
    redis.call('DEL', ukey)
end
return uid
`)

// redisSessionStore keeps a single refresh session per user.
// Two key-value pairs are stored for each session:
//  1. session_user:{UserID} -> RefreshToken (forward lookup, enforces one session per user)
//  2. session_token:{RefreshToken} -> UserID (reverse lookup during refresh/logout)
//
// Both keys carry the refresh token TTL so abandoned sessions expire on their
// own. All writes go through Lua scripts so the replace-previous-token step
// is atomic even under concurrent logins for the same user.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionStore creates a new Redis-backed SessionStore.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) interfaces.SessionStore {
	return &redisSessionStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisSessionStore"),
	}
}

func userKey(userID uuid.UUID) string {
	return sessionUserPrefix + userID.String()
}

func tokenKey(refreshToken string) string {
	return sessionTokenPrefix + refreshToken
}

// Save stores the refresh token for the user, replacing any previous session.
// The reverse key of the replaced token is deleted in the same atomic step,
// so the old token can no longer be used for refresh and concurrent logins
// leave exactly one live token (last writer wins).
func (r *redisSessionStore) Save(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	userIDStr := userID.String()

	r.logger.Debug("Saving refresh session in Redis",
		zap.String("userID", userIDStr),
		zap.Duration("ttl", r.ttl),
	)

	err := saveSessionScript.Run(ctx, r.client,
		[]string{userKey(userID), tokenKey(refreshToken)},
		refreshToken, userIDStr, r.ttl.Milliseconds(),
	).Err()
	if err != nil {
		r.logger.Error("Failed to save refresh session in redis", zap.Error(err), zap.String("userID", userIDStr))
		return fmt.Errorf("failed to save refresh session in redis: %w", err)
	}
	return nil
}

// FindByToken returns the session associated with the refresh token.
func (r *redisSessionStore) FindByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	userIDStr, err := r.client.Get(ctx, tokenKey(refreshToken)).Result()
	if err != nil {
		if err == redis.Nil {
			r.logger.Debug("Refresh session not found in Redis")
			return nil, models.ErrSessionNotFound
		}
		r.logger.Error("Failed to get refresh session from redis", zap.Error(err))
		return nil, fmt.Errorf("failed to get refresh session from redis: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		// Данные в Redis повреждены
		r.logger.Error("Failed to parse userID (UUID) from redis session data",
			zap.Error(err),
			zap.String("value", userIDStr),
		)
		return nil, fmt.Errorf("corrupted userID data in redis session: %w", err)
	}

	return &models.Session{
		UserID:       userID,
		RefreshToken: refreshToken,
	}, nil
}

// DeleteByToken removes the session for the given refresh token. Deleting a
// token that is already gone is not an error.
func (r *redisSessionStore) DeleteByToken(ctx context.Context, refreshToken string) error {
	userIDStr, err := deleteSessionScript.Run(ctx, r.client,
		[]string{tokenKey(refreshToken)},
		refreshToken,
	).Text()
	if err != nil {
		r.logger.Error("Failed to delete refresh session from redis", zap.Error(err))
		return fmt.Errorf("failed to delete refresh session from redis: %w", err)
	}
	if userIDStr == "" {
		r.logger.Warn("Attempted to delete non-existent refresh session")
		return nil
	}

	r.logger.Info("Refresh session deleted from Redis", zap.String("userID", userIDStr))
	return nil
}
