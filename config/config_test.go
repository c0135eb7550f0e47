package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 || cfg.Server.Mode != "release" {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if cfg.Auth.Enabled {
		t.Error("auth should be disabled by default")
	}
	if cfg.Cleaner.DefaultIntensity != "soft" {
		t.Errorf("DefaultIntensity = %q, want soft", cfg.Cleaner.DefaultIntensity)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Paste.PrefsPath == "" {
		t.Error("PrefsPath should have a default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TOKENSAVER_PORT", "9090")
	t.Setenv("TOKENSAVER_AUTH_ENABLED", "true")
	t.Setenv("TOKENSAVER_API_KEYS", " k1, ,k2 ")
	t.Setenv("TOKENSAVER_RATE_RPS", "2.5")
	t.Setenv("TOKENSAVER_POLL_INTERVAL", "1s")
	t.Setenv("TOKENSAVER_DEFAULT_INTENSITY", "aggressive")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if !cfg.Auth.Enabled {
		t.Error("Auth.Enabled = false, want true")
	}
	if len(cfg.Auth.APIKeys) != 2 || cfg.Auth.APIKeys[0] != "k1" || cfg.Auth.APIKeys[1] != "k2" {
		t.Errorf("APIKeys = %v, want [k1 k2]", cfg.Auth.APIKeys)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("RequestsPerSecond = %v, want 2.5", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.Paste.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want 1s", cfg.Paste.PollInterval)
	}
	if cfg.Cleaner.DefaultIntensity != "aggressive" {
		t.Errorf("DefaultIntensity = %q", cfg.Cleaner.DefaultIntensity)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TOKENSAVER_PORT", "not-a-number")
	t.Setenv("TOKENSAVER_CACHE_TTL", "forever")

	cfg := Load()
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want fallback 8080", cfg.Server.Port)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("TTL = %v, want fallback 1h", cfg.Cache.TTL)
	}
}
