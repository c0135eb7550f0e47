package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/tokensaver/cache"
	"github.com/use-agent/tokensaver/models"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Health returns a handler for GET /api/v1/health.
func Health(cc *cache.Cache, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries := 0
		if cc != nil {
			entries = cc.Len()
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:       "healthy",
			Uptime:       time.Since(startTime).Round(time.Second).String(),
			Version:      Version,
			CacheEntries: entries,
		})
	}
}
