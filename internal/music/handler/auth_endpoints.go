package handler

import (
	"net/http"

	"music-store-server/internal/music/service"
	"music-store-server/internal/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const refreshCookieName = "refreshToken"

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	maxAge := int(h.codec.RefreshTTL().Seconds())
	c.SetCookie(refreshCookieName, token, maxAge, "/", "", false, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request data: " + err.Error()})
		return
	}

	if req.Password != req.RetryPass {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Message: models.ErrPasswordsDoNotMatch.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *Handler) activate(c *gin.Context) {
	link := c.Param("link")
	if err := h.authService.Activate(c.Request.Context(), link); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.cfg.ClientURL)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	loginsTotal.Inc()
	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	c.JSON(http.StatusOK, authResponse{
		AccessToken: result.Tokens.AccessToken,
		User:        newUserResponse(result.User),
	})
}

func (h *Handler) refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	refreshesTotal.Inc()
	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	c.JSON(http.StatusOK, authResponse{
		AccessToken: result.Tokens.AccessToken,
		User:        newUserResponse(result.User),
	})
}

func (h *Handler) logout(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err == nil && refreshToken != "" {
		if err := h.authService.Logout(c.Request.Context(), refreshToken); err != nil {
			zap.L().Error("Failed to delete session during logout", zap.Error(err))
		}
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, newUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}
