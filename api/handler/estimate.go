package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/tokensaver/cleaner"
	"github.com/use-agent/tokensaver/config"
	"github.com/use-agent/tokensaver/metrics"
	"github.com/use-agent/tokensaver/models"
)

// Estimate returns a handler for POST /api/v1/estimate. It reports the
// token estimate for the text as sent, without cleaning it.
func Estimate(cfg config.CleanerConfig, rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EstimateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewAPIError(models.ErrCodeInvalidInput, err.Error(), err))
			return
		}
		if err := checkSize(cfg, *req.Text); err != nil {
			respondError(c, err)
			return
		}

		b := cleaner.Analyze(*req.Text)
		rec.ObserveEstimate("estimate")

		c.JSON(http.StatusOK, models.EstimateResponse{
			Success:    true,
			Tokens:     b.Tokens,
			Chars:      b.Chars,
			CJKChars:   b.CJK,
			OtherChars: b.Other,
		})
	}
}
