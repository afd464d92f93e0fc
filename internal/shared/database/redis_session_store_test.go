package database_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"music-store-server/internal/shared/database"
	"music-store-server/internal/shared/interfaces"
	"music-store-server/internal/shared/models"
)

func newTestSessionStore(t *testing.T) interfaces.SessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return database.NewRedisSessionStore(client, 10*time.Minute, zap.NewNop())
}

func TestRedisSessionStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := newTestSessionStore(t)
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, userID, "token-1"))

	session, err := store.FindByToken(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "token-1", session.RefreshToken)

	_, err = store.FindByToken(ctx, "unknown-token")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestRedisSessionStore_SaveReplacesPreviousToken(t *testing.T) {
	ctx := context.Background()
	store := newTestSessionStore(t)
	userID := uuid.New()

	// 1. Первый логин
	require.NoError(t, store.Save(ctx, userID, "token-old"))

	// 2. Повторный логин заменяет сессию
	require.NoError(t, store.Save(ctx, userID, "token-new"))

	// 3. Старый токен больше не резолвится
	_, err := store.FindByToken(ctx, "token-old")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	session, err := store.FindByToken(ctx, "token-new")
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
}

// Два логина одного пользователя, выполняющиеся одновременно, не должны
// оставлять двух живых refresh-токенов: побеждает последняя запись, обратный
// ключ проигравшего токена удаляется в том же атомарном шаге.
func TestRedisSessionStore_ConcurrentSavesLeaveSingleLiveToken(t *testing.T) {
	ctx := context.Background()
	store := newTestSessionStore(t)
	userID := uuid.New()

	for i := 0; i < 200; i++ {
		tokenA := fmt.Sprintf("token-a-%d", i)
		tokenB := fmt.Sprintf("token-b-%d", i)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Save(ctx, userID, tokenA))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Save(ctx, userID, tokenB))
		}()
		wg.Wait()

		live := 0
		for _, token := range []string{tokenA, tokenB} {
			if _, err := store.FindByToken(ctx, token); err == nil {
				live++
			}
		}
		require.Equal(t, 1, live, "iteration %d: expected exactly one live refresh token", i)
	}
}

func TestRedisSessionStore_DeleteByToken(t *testing.T) {
	ctx := context.Background()
	store := newTestSessionStore(t)
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, userID, "token-1"))
	require.NoError(t, store.DeleteByToken(ctx, "token-1"))

	_, err := store.FindByToken(ctx, "token-1")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	// Повторное удаление идемпотентно
	assert.NoError(t, store.DeleteByToken(ctx, "token-1"))
}

func TestRedisSessionStore_DeleteStaleTokenKeepsCurrentSession(t *testing.T) {
	ctx := context.Background()
	store := newTestSessionStore(t)
	userID := uuid.New()

	// Логаут со старым токеном после повторного логина не должен
	// разлогинивать актуальную сессию пользователя.
	require.NoError(t, store.Save(ctx, userID, "token-old"))
	require.NoError(t, store.Save(ctx, userID, "token-new"))
	require.NoError(t, store.DeleteByToken(ctx, "token-old"))

	session, err := store.FindByToken(ctx, "token-new")
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
}
