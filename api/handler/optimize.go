package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/tokensaver/cache"
	"github.com/use-agent/tokensaver/cleaner"
	"github.com/use-agent/tokensaver/config"
	"github.com/use-agent/tokensaver/metrics"
	"github.com/use-agent/tokensaver/models"
)

// Optimize returns a handler for POST /api/v1/optimize.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults, enforce the size cap.
//  2. Cache lookup (only when max_age > 0).
//  3. HTML requests: convert to Markdown text   (records convert_ms)
//  4. cleaner.Clean                             (records cleaning_ms)
//  5. Cache store, fill Timing, return 200.
//
// Zero savings is a normal 200 response with saved_chars 0.
func Optimize(cfg config.CleanerConfig, hc *cleaner.HTMLConverter, cc *cache.Cache, rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.OptimizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewAPIError(models.ErrCodeInvalidInput, err.Error(), err))
			return
		}
		req.Defaults(cfg.DefaultIntensity)
		intensity := cleaner.ParseIntensity(req.Intensity)

		text := *req.Text
		if err := checkSize(cfg, text); err != nil {
			respondError(c, err)
			return
		}

		// ── 2. Cache lookup ────────────────────────────────────────
		var cacheKey string
		if cc != nil && req.MaxAge > 0 {
			cacheKey = cache.Key(text, intensity.String(), req.ContentType)
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				resp := optimizeResponse(cached)
				resp.CacheStatus = "hit"
				resp.Timing = models.TimingInfo{TotalMs: time.Since(totalStart).Milliseconds()}
				c.JSON(http.StatusOK, resp)
				return
			}
		}

		// ── 3. HTML → text ──────────────────────────────────────────
		var timing models.TimingInfo
		raw := text
		if req.ContentType == "html" {
			convStart := time.Now()
			converted, err := hc.ToText(text)
			timing.ConvertMs = time.Since(convStart).Milliseconds()
			if err != nil {
				respondError(c, models.NewAPIError(models.ErrCodeConversionFailed, "html conversion failed", err))
				return
			}
			text = converted
		}

		// ── 4. Clean ────────────────────────────────────────────────
		cleanStart := time.Now()
		res := cleaner.Clean(text, intensity)
		cleanDur := time.Since(cleanStart)
		timing.CleaningMs = cleanDur.Milliseconds()

		if req.ContentType == "html" {
			// Savings are measured against what the caller sent.
			res = cleaner.Rebase(raw, res)
		}
		rec.ObserveClean("optimize", res, cleanDur)

		slog.Debug("optimize",
			"intensity", res.Intensity,
			"content_type", req.ContentType,
			"saved_chars", res.SavedChars,
		)

		// ── 5. Cache store + respond ────────────────────────────────
		resp := optimizeResponse(res)
		if cacheKey != "" {
			cc.Set(cacheKey, res)
			resp.CacheStatus = "miss"
		}
		timing.TotalMs = time.Since(totalStart).Milliseconds()
		resp.Timing = timing

		c.JSON(http.StatusOK, resp)
	}
}

func optimizeResponse(res cleaner.Result) models.OptimizeResponse {
	return models.OptimizeResponse{
		Success:   true,
		Text:      res.Text,
		Intensity: res.Intensity.String(),
		Stats: &models.Stats{
			OriginalChars:         res.OriginalChars,
			CleanedChars:          res.CleanedChars,
			SavedChars:            res.SavedChars,
			SavedPct:              res.SavedPct,
			EstimatedTokenSavings: res.EstimatedTokenSavings,
		},
	}
}

// checkSize rejects text longer than the configured cap. A cap <= 0
// disables the check.
func checkSize(cfg config.CleanerConfig, text string) error {
	if cfg.MaxTextChars <= 0 {
		return nil
	}
	// Byte length bounds UTF-16 length from above; skip counting when
	// the text is obviously small enough.
	if len(text) <= cfg.MaxTextChars {
		return nil
	}
	if n := cleaner.Len16(text); n > cfg.MaxTextChars {
		return models.NewAPIError(models.ErrCodeTooLarge,
			fmt.Sprintf("text is %d characters, limit is %d", n, cfg.MaxTextChars), nil)
	}
	return nil
}
