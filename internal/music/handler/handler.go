package handler

import (
	"music-store-server/internal/music/config"
	"music-store-server/internal/music/service"
	"music-store-server/internal/shared/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authService  service.AuthService
	trackService service.TrackService
	codec        *auth.Codec
	cfg          *config.Config
}

func NewHandler(authService service.AuthService, trackService service.TrackService, codec *auth.Codec, cfg *config.Config) *Handler {
	return &Handler{
		authService:  authService,
		trackService: trackService,
		codec:        codec,
		cfg:          cfg,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/registration", h.register)
		users.GET("/activate/:link", h.activate)
		users.POST("/login", h.login)
		users.POST("/refresh", h.refresh)
		users.POST("/logout", h.logout)
		users.GET("", h.AuthMiddleware(), h.listUsers)
	}

	tracks := api.Group("/tracks")
	{
		tracks.POST("", h.AuthMiddleware(), h.createTrack)
		tracks.GET("", h.listTracks)
		tracks.GET("/search", h.searchTracks)
		tracks.GET("/:id", h.getTrack)
		tracks.DELETE("/:id", h.AuthMiddleware(), h.deleteTrack)
		tracks.POST("/:id/comment", h.AuthMiddleware(), h.addComment)
		tracks.DELETE("/:id/comment/:commentId", h.AuthMiddleware(), h.deleteComment)
		tracks.POST("/:id/listen", h.listen)
	}
}
