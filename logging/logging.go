// Package logging configures the process-wide slog logger for every
// tokensaver binary.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/use-agent/tokensaver/config"
)

// New builds a logger writing to w at the level and format in cfg.
// Unknown levels mean info; any format other than "text" means JSON.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// Init installs New(cfg, w) as the default logger.
func Init(cfg config.LogConfig, w io.Writer) {
	slog.SetDefault(New(cfg, w))
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
