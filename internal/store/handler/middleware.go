package handler

import (
	"net/http"
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

// RequireRole rejects callers whose token does not carry the given role.
// Must run after AuthMiddleware.
func (h *Handler) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			zap.L().Error("RequireRole: claims missing in context")
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Code:    models.ErrCodeForbidden,
				Message: "Access denied",
			})
			return
		}
		if claims.Role != role {
			zap.L().Warn("RequireRole: insufficient role",
				zap.String("userID", claims.UserID.String()),
				zap.String("role", claims.Role),
				zap.String("required", role),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Code:    models.ErrCodeForbidden,
				Message: "Access denied",
			})
			return
		}
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
