package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	Cleaner   CleanerConfig
	Paste     PasteConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"

	// ShutdownTimeout is how long in-flight requests get to drain.
	ShutdownTimeout time.Duration // default: 5s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key or client IP.
	RequestsPerSecond float64 // default: 20

	// Burst is the maximum burst size per identity.
	Burst int // default: 40
}

// CacheConfig controls the optimize result cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached results.
	MaxEntries int // default: 1000

	// TTL is the hard expiry of a cached result, independent of max_age.
	TTL time.Duration // default: 1h
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// CleanerConfig holds host-side defaults for cleaning requests. The
// cleaner package itself never reads configuration.
type CleanerConfig struct {
	// DefaultIntensity is used when a request does not name one.
	DefaultIntensity string // default: "soft"

	// MaxTextChars caps request text length in UTF-16 code units.
	MaxTextChars int // default: 1_000_000
}

// PasteConfig controls the interactive clipboard host.
type PasteConfig struct {
	// PrefsPath is the YAML preferences file shared with the settings UI.
	PrefsPath string // default: $XDG_CONFIG_HOME/tokensaver/prefs.yaml

	// PollInterval is how often the clipboard is polled for changes.
	PollInterval time.Duration // default: 350ms
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            envOr("TOKENSAVER_HOST", "0.0.0.0"),
			Port:            envIntOr("TOKENSAVER_PORT", 8080),
			Mode:            envOr("TOKENSAVER_MODE", "release"),
			ShutdownTimeout: envDurationOr("TOKENSAVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("TOKENSAVER_AUTH_ENABLED", false),
			APIKeys: envSliceOr("TOKENSAVER_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("TOKENSAVER_RATE_RPS", 20.0),
			Burst:             envIntOr("TOKENSAVER_RATE_BURST", 40),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("TOKENSAVER_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("TOKENSAVER_CACHE_TTL", time.Hour),
		},
		Log: LogConfig{
			Level:  envOr("TOKENSAVER_LOG_LEVEL", "info"),
			Format: envOr("TOKENSAVER_LOG_FORMAT", "json"),
		},
		Cleaner: CleanerConfig{
			DefaultIntensity: envOr("TOKENSAVER_DEFAULT_INTENSITY", "soft"),
			MaxTextChars:     envIntOr("TOKENSAVER_MAX_TEXT_CHARS", 1_000_000),
		},
		Paste: PasteConfig{
			PrefsPath:    envOr("TOKENSAVER_PREFS", defaultPrefsPath()),
			PollInterval: envDurationOr("TOKENSAVER_POLL_INTERVAL", 350*time.Millisecond),
		},
	}
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tokensaver-prefs.yaml"
	}
	return filepath.Join(dir, "tokensaver", "prefs.yaml")
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
