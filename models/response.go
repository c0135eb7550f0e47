package models

// OptimizeResponse is the response for POST /api/v1/optimize.
type OptimizeResponse struct {
	// Success indicates whether the request was processed. Zero savings is
	// still a success.
	Success bool `json:"success"`

	// Text is the cleaned output.
	Text string `json:"text"`

	// Intensity is the profile that ran.
	Intensity string `json:"intensity,omitempty"`

	// Stats reports what cleaning removed.
	Stats *Stats `json:"stats,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// Stats mirrors the numeric part of a cleaning result.
type Stats struct {
	OriginalChars         int    `json:"original_chars"`
	CleanedChars          int    `json:"cleaned_chars"`
	SavedChars            int    `json:"saved_chars"`
	SavedPct              string `json:"saved_pct"`
	EstimatedTokenSavings int    `json:"estimated_token_savings"`
}

// EstimateResponse is the response for POST /api/v1/estimate.
type EstimateResponse struct {
	Success bool `json:"success"`

	// Tokens is the heuristic token estimate.
	Tokens int `json:"tokens"`

	// Chars is the text length in UTF-16 code units.
	Chars int `json:"chars"`

	// CJKChars and OtherChars are the two character classes behind Tokens.
	CJKChars   int `json:"cjk_chars"`
	OtherChars int `json:"other_chars"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// ConvertMs is the time spent turning HTML into text (html requests only).
	ConvertMs int64 `json:"convert_ms,omitempty"`

	// CleaningMs is the time spent in the cleaning pipeline.
	CleaningMs int64 `json:"cleaning_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`

	// CacheEntries is the number of cached optimize results.
	CacheEntries int `json:"cache_entries"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}
