package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/use-agent/tokensaver/api"
	"github.com/use-agent/tokensaver/cache"
	"github.com/use-agent/tokensaver/cleaner"
	"github.com/use-agent/tokensaver/config"
	"github.com/use-agent/tokensaver/logging"
	"github.com/use-agent/tokensaver/metrics"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	logging.Init(cfg.Log, os.Stdout)
	slog.Info("tokensaver starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"auth", cfg.Auth.Enabled,
		"defaultIntensity", cfg.Cleaner.DefaultIntensity,
	)

	if in := cleaner.Intensity(cfg.Cleaner.DefaultIntensity); !in.Valid() {
		slog.Warn("unknown default intensity, using soft", "intensity", cfg.Cleaner.DefaultIntensity)
		cfg.Cleaner.DefaultIntensity = string(cleaner.Soft)
	}
	if cfg.Auth.Enabled && len(cfg.Auth.APIKeys) == 0 {
		slog.Warn("auth enabled but TOKENSAVER_API_KEYS is empty, API is open")
	}

	// ── 3. Metrics registry ─────────────────────────────────────────
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		slog.Error("failed to initialise metrics", "error", err)
		os.Exit(1)
	}

	// ── 4. Cache + HTML converter ───────────────────────────────────
	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	hc := cleaner.NewHTMLConverter()

	// ── 5. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(api.Deps{
		Config:    cfg,
		HTML:      hc,
		Cache:     cc,
		Metrics:   rec,
		Gatherer:  reg,
		StartTime: time.Now(),
	})

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("tokensaver stopped")
}
