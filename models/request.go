package models

// OptimizeRequest is the payload for POST /api/v1/optimize.
type OptimizeRequest struct {
	// Text is the raw text to clean. Required, but may be empty: empty
	// text is a valid no-op.
	Text *string `json:"text" binding:"required"`

	// Intensity selects the cleaning profile.
	// Allowed: "soft" (default), "aggressive".
	Intensity string `json:"intensity,omitempty" binding:"omitempty,oneof=soft aggressive"`

	// ContentType tells the server how Text is encoded.
	// "text" (default): plain text, cleaned as-is.
	// "html": rich-text paste, converted to Markdown before cleaning.
	ContentType string `json:"content_type,omitempty" binding:"omitempty,oneof=text html"`

	// MaxAge enables the result cache: a cached result younger than MaxAge
	// milliseconds is returned without re-cleaning. 0 disables caching.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *OptimizeRequest) Defaults(defaultIntensity string) {
	if r.Intensity == "" {
		r.Intensity = defaultIntensity
	}
	if r.ContentType == "" {
		r.ContentType = "text"
	}
}

// EstimateRequest is the payload for POST /api/v1/estimate.
type EstimateRequest struct {
	// Text is the text to estimate. Empty text is allowed and yields 0.
	Text *string `json:"text" binding:"required"`
}
