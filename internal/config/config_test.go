package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FLIGHT_POLL_INTERVAL", "")
	t.Setenv("AIRPORT_POLL_INTERVAL", "")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("PG_HOST", "")
	t.Setenv("VIEW_REAP_INTERVAL", "")

	cfg := Load()

	if cfg.FlightPollInterval != 15*time.Second {
		t.Errorf("Expected flight interval 15s, got %s", cfg.FlightPollInterval)
	}
	if cfg.AirportPollInterval != 5*time.Minute {
		t.Errorf("Expected airport interval 5m, got %s", cfg.AirportPollInterval)
	}
	if cfg.BackendURL != "http://localhost:8000" {
		t.Errorf("Expected default backend URL, got %s", cfg.BackendURL)
	}
	if cfg.ViewReapInterval != time.Minute {
		t.Errorf("Expected reap interval 1m, got %s", cfg.ViewReapInterval)
	}
	if cfg.HistoryEnabled() {
		t.Error("Expected history disabled without PG_HOST")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FLIGHT_POLL_INTERVAL", "3s")
	t.Setenv("BACKEND_URL", "http://backend:9000/")
	t.Setenv("RATE_LIMIT_BURST", "7")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_DB", "skyview")
	t.Setenv("PG_USER", "u")
	t.Setenv("PG_PASSWORD", "p")

	cfg := Load()

	if cfg.FlightPollInterval != 3*time.Second {
		t.Errorf("Expected 3s, got %s", cfg.FlightPollInterval)
	}
	if cfg.BackendURL != "http://backend:9000" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.BackendURL)
	}
	if cfg.RateLimitBurst != 7 {
		t.Errorf("Expected burst 7, got %d", cfg.RateLimitBurst)
	}
	if cfg.RateLimitPerSecond != 5 {
		t.Errorf("Expected fallback rps 5, got %v", cfg.RateLimitPerSecond)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("Expected 2 origins, got %v", cfg.AllowedOrigins)
	}
	if !cfg.HistoryEnabled() {
		t.Error("Expected history enabled")
	}
	if got := cfg.PostgresDSN(); got != "postgres://u:p@db:5432/skyview?sslmode=disable" {
		t.Errorf("Unexpected DSN %s", got)
	}
}
