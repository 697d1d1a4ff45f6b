package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/znsio/specmatic-catalog-admin-go/internal/apperrors"
)

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":     message,
		"status":    statusCode,
		"message":   message,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ServiceError maps an admin operation failure to a status code and writes
// the operator notification as the message.
func ServiceError(c *gin.Context, err error) {
	ErrorResponse(c, StatusFor(err), apperrors.Notification(err))
}

func StatusFor(err error) int {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound
	}

	if errors.Is(err, apperrors.ErrInFlight) || errors.Is(err, apperrors.ErrNoPendingDelete) {
		return http.StatusConflict
	}

	var transportErr *apperrors.TransportError
	var serverErr *apperrors.ServerError
	var malformedErr *apperrors.MalformedResponseError
	if errors.As(err, &transportErr) || errors.As(err, &serverErr) || errors.As(err, &malformedErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
