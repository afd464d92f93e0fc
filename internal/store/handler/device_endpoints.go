package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"music-store-server/internal/shared/models"
	"music-store-server/internal/store/service"

	"github.com/gin-gonic/gin"
)

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: message})
}

func (h *Handler) createDevice(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		badRequest(c, "Field 'name' is required")
		return
	}

	price, err := strconv.Atoi(c.PostForm("price"))
	if err != nil || price <= 0 {
		badRequest(c, "Field 'price' must be a positive integer")
		return
	}

	input := service.CreateDeviceInput{
		Name:      name,
		Price:     price,
		BrandName: c.PostForm("brandName"),
		TypeName:  c.PostForm("typeName"),
	}

	if raw := c.PostForm("info"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.Info); err != nil {
			badRequest(c, "Field 'info' must be a JSON array of characteristics")
			return
		}
	}

	img, err := c.FormFile("img")
	if err != nil {
		badRequest(c, "Image file 'img' is required")
		return
	}
	input.Img = img

	device, err := h.deviceService.Create(c.Request.Context(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	devicesCreatedTotal.Inc()
	c.JSON(http.StatusOK, device)
}

func (h *Handler) listDevices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	pageResult, err := h.deviceService.List(c.Request.Context(), service.ListDevicesInput{
		BrandName: c.Query("brandName"),
		TypeName:  c.Query("typeName"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResult)
}

func (h *Handler) getDevice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	device, err := h.deviceService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// updateDevice обновляет только те поля, что присутствуют в форме.
func (h *Handler) updateDevice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input service.UpdateDeviceInput

	if name, present := c.GetPostForm("name"); present {
		if name == "" {
			badRequest(c, "Field 'name' must not be empty")
			return
		}
		input.Name = &name
	}
	if rawPrice, present := c.GetPostForm("price"); present {
		price, err := strconv.Atoi(rawPrice)
		if err != nil || price <= 0 {
			badRequest(c, "Field 'price' must be a positive integer")
			return
		}
		input.Price = &price
	}
	if brandName, present := c.GetPostForm("brandName"); present {
		input.BrandName = &brandName
	}
	if typeName, present := c.GetPostForm("typeName"); present {
		input.TypeName = &typeName
	}
	if raw, present := c.GetPostForm("info"); present {
		if err := json.Unmarshal([]byte(raw), &input.Info); err != nil {
			badRequest(c, "Field 'info' must be a JSON array of characteristics")
			return
		}
		input.HasInfo = true
	}
	if img, err := c.FormFile("img"); err == nil {
		input.Img = img
	}

	device, err := h.deviceService.Update(c.Request.Context(), id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (h *Handler) deleteDevice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deviceService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.String()})
}

func (h *Handler) addToBasket(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}
	deviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deviceService.AddToBasket(c.Request.Context(), claims.UserID, deviceID); err != nil {
		handleServiceError(c, err)
		return
	}

	basketOperationsTotal.WithLabelValues("add").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Device added to basket"})
}

func (h *Handler) removeFromBasket(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}
	deviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deviceService.RemoveFromBasket(c.Request.Context(), claims.UserID, deviceID); err != nil {
		handleServiceError(c, err)
		return
	}

	basketOperationsTotal.WithLabelValues("remove").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Device removed from basket"})
}

func (h *Handler) rateDevice(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}
	deviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.deviceService.Rate(c.Request.Context(), deviceID, claims.UserID, req.Rating); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating saved"})
}

func (h *Handler) commentDevice(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}
	deviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	comment, err := h.deviceService.Comment(c.Request.Context(), deviceID, claims.UserID, claims.Username, req.Feedback)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}
