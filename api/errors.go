package api

import (
	"errors"
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// abortWithError translates service errors into HTTP responses. Any
// error that isn't part of the taxonomy is a 500 and gets logged with
// the request ID; the taxonomy errors carry messages safe to show.
func abortWithError(c *gin.Context, err error) {
	requestID := c.MustGet("requestID").(string)

	var status int

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrExternalStorage):
		status = http.StatusBadGateway
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Unexpected service error", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error":     err.Error(),
		"requestID": requestID,
	})
}
