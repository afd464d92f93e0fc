package handler

import (
	"music-store-server/internal/shared/auth"
	"music-store-server/internal/shared/models"
	"music-store-server/internal/store/config"
	"music-store-server/internal/store/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authService    service.AuthService
	catalogService service.CatalogService
	deviceService  service.DeviceService
	codec          *auth.Codec
	cfg            *config.Config
}

func NewHandler(
	authService service.AuthService,
	catalogService service.CatalogService,
	deviceService service.DeviceService,
	codec *auth.Codec,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authService:    authService,
		catalogService: catalogService,
		deviceService:  deviceService,
		codec:          codec,
		cfg:            cfg,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	user := api.Group("/user")
	{
		user.POST("/registration", h.register)
		user.GET("/activate/:link", h.activate)
		user.POST("/login", h.login)
		user.POST("/refresh", h.refresh)
		user.POST("/logout", h.logout)
		user.GET("/check", h.AuthMiddleware(), h.check)
		user.DELETE("/:id", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin), h.deleteUser)
	}

	brand := api.Group("/brand")
	{
		brand.POST("", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin), h.createBrand)
		brand.GET("", h.listBrands)
		brand.DELETE("/:id", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin), h.deleteBrand)
	}

	deviceType := api.Group("/type")
	{
		deviceType.POST("", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin), h.createType)
		deviceType.GET("", h.listTypes)
		deviceType.DELETE("/:id", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin), h.deleteType)
	}

	device := api.Group("/device")
	{
		device.POST("", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin), h.createDevice)
		device.GET("", h.listDevices)
		device.GET("/:id", h.getDevice)
		device.PATCH("/:id", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin), h.updateDevice)
		device.DELETE("/:id", h.AuthMiddleware(), h.RequireRole(models.RoleAdmin), h.deleteDevice)
		device.POST("/:id/basket", h.AuthMiddleware(), h.addToBasket)
		device.DELETE("/:id/basket", h.AuthMiddleware(), h.removeFromBasket)
		device.POST("/:id/rating", h.AuthMiddleware(), h.rateDevice)
		device.POST("/:id/comment", h.AuthMiddleware(), h.commentDevice)
	}
}
