package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
	"github.com/znsio/specmatic-catalog-admin-go/pkg/utils"
)

const FlagKeyContextKey = "flagKey"

// RequireFlagKey rejects toggle requests for anything but the known flags
// before they reach the list view.
func RequireFlagKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("key")

		// key is required
		if raw == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "flag key is required")
			c.Abort()
			return
		}

		key, err := models.ParseFlagKey(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			c.Abort()
			return
		}

		c.Set(FlagKeyContextKey, key)
		c.Next()
	}
}
