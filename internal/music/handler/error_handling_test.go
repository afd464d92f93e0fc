package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"music-store-server/internal/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Сервисные ошибки, завернувшие ErrInvalidInput, отображаются в 400
// независимо от текста сообщения.
func TestHandleServiceError_WrappedInvalidInput(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := fmt.Errorf("upload track: %w: title must not be empty", models.ErrInvalidInput)
	handleServiceError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrCodeValidation)
}
