package config

import "testing"

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected an error without DATABASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/products")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis must be off by default, got %q", cfg.Redis.Addr)
	}
	if cfg.RateLimit.PerSecond != 10.0 || cfg.RateLimit.Burst != 20 {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("unexpected listen address %q", cfg.Addr())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/products")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_CACHE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port override 9090, got %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level override, got %q", cfg.LogLevel)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected redis addr override, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.CacheTTL.Seconds() != 30 {
		t.Errorf("expected 30s cache ttl, got %v", cfg.Redis.CacheTTL)
	}
}
