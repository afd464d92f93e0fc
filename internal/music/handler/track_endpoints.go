package handler

import (
	"errors"
	"net/http"
	"strconv"

	"music-store-server/internal/music/service"
	"music-store-server/internal/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTrackOffset = 0
	defaultTrackCount  = 10
	maxTrackCount      = 100
)

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid " + name + " format"})
		return uuid.Nil, err
	}
	return id, nil
}

func (h *Handler) createTrack(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		zap.L().Error("Claims missing in context during track creation")
		handleServiceError(c, errors.New("internal server error: context missing claims"))
		return
	}

	audio, err := c.FormFile("audiofile")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Message: "Audio file is required"})
		return
	}
	picture, err := c.FormFile("img")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Message: "Picture file is required"})
		return
	}

	track, err := h.trackService.Create(c.Request.Context(), service.CreateTrackInput{
		Name:    c.PostForm("name"),
		Artist:  c.PostForm("artist"),
		Audio:   audio,
		Picture: picture,
		AddedBy: claims.UserID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	tracksCreatedTotal.Inc()
	c.JSON(http.StatusOK, track)
}

func (h *Handler) listTracks(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", strconv.Itoa(defaultTrackOffset)))
	if err != nil || offset < 0 {
		offset = defaultTrackOffset
	}
	count, err := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(defaultTrackCount)))
	if err != nil || count <= 0 || count > maxTrackCount {
		count = defaultTrackCount
	}

	page, err := h.trackService.List(c.Request.Context(), offset, count)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) searchTracks(c *gin.Context) {
	tracks, err := h.trackService.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracks)
}

func (h *Handler) getTrack(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	track, err := h.trackService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, track)
}

func (h *Handler) deleteTrack(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		zap.L().Error("Claims missing in context during track deletion")
		handleServiceError(c, errors.New("internal server error: context missing claims"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.trackService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.String()})
}

func (h *Handler) addComment(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		zap.L().Error("Claims missing in context during comment creation")
		handleServiceError(c, errors.New("internal server error: context missing claims"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	comment, err := h.trackService.AddComment(c.Request.Context(), id, claims.Email, req.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) deleteComment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return
	}

	if err := h.trackService.DeleteComment(c.Request.Context(), id, commentID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": commentID.String()})
}

func (h *Handler) listen(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.trackService.Listen(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	trackListensTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"id": id.String()})
}
