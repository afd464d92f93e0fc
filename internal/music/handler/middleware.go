package handler

import (
	"strings"

	"music-store-server/internal/shared/auth"
	"music-store-server/internal/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextClaimsKey = "claims"

// AuthMiddleware verifies the Bearer access token and attaches the claims to
// the gin context.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			zap.L().Warn("Authorization header missing")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			zap.L().Warn("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		claims, err := h.codec.VerifyAccess(parts[1])
		if err != nil {
			zap.L().Warn("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

// claimsFromContext returns the claims set by AuthMiddleware.
func claimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	raw, exists := c.Get(contextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := raw.(*auth.Claims)
	return claims, ok
}
