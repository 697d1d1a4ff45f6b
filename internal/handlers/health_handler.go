package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/znsio/specmatic-catalog-admin-go/internal/services"
)

// HealthCheck reports whether the collection has been loaded at least once.
func HealthCheck(listView *services.ListView) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":   "Ok",
			"products": listView.Len(),
		}
		if loadedAt := listView.LoadedAt(); !loadedAt.IsZero() {
			body["loadedAt"] = loadedAt.Format(time.RFC3339)
		}
		c.JSON(http.StatusOK, body)
	}
}
