package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/znsio/specmatic-catalog-admin-go/internal/apperrors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.NewValidationError("name", "name is required"), http.StatusBadRequest},
		{"not found", apperrors.NewNotFoundError("product", "9"), http.StatusNotFound},
		{"in flight", apperrors.ErrInFlight, http.StatusConflict},
		{"nothing selected", apperrors.ErrNoPendingDelete, http.StatusConflict},
		{
			"wrapped server error",
			&apperrors.NotificationError{Message: "Failed to delete product.", Err: &apperrors.ServerError{StatusCode: 500}},
			http.StatusBadGateway,
		},
		{
			"wrapped transport error",
			&apperrors.NotificationError{Message: "x", Err: &apperrors.TransportError{Op: "list products", Err: errors.New("timeout")}},
			http.StatusBadGateway,
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}
