package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"music-store-server/internal/shared/auth"
	"music-store-server/internal/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoleTestRouter(t *testing.T) (*gin.Engine, *auth.Codec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := auth.NewCodec("role-access-secret", "role-refresh-secret", time.Hour, time.Hour, "store-service")
	require.NoError(t, err)

	h := &Handler{codec: codec}
	router := gin.New()
	router.DELETE("/admin-only", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router, codec
}

func TestRequireRole(t *testing.T) {
	router, codec := newRoleTestRouter(t)

	issueToken := func(t *testing.T, role string) string {
		t.Helper()
		pair, err := codec.Issue(auth.Identity{UserID: uuid.New(), Role: role})
		require.NoError(t, err)
		return pair.AccessToken
	}

	t.Run("Admin passes", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleAdmin))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Regular user is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleUser))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), models.ErrCodeForbidden)
	})

	t.Run("No token at all", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/admin-only", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
