package config

import (
	"testing"
	"time"
)

func TestSyncIntervalClamp(t *testing.T) {
	t.Setenv("SYNC_INTERVAL", "5s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Scheduler.Interval != 30*time.Second {
		t.Fatalf("expected interval to be clamped to 30s, got %v", cfg.Scheduler.Interval)
	}
}

func TestAPIConfigFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://nic.example.org")
	t.Setenv("CSRF_TOKEN", "abc")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("PREFERENCE_BACKEND", "REDIS")
	t.Setenv("PROFILE_ID", "ops")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.API.BaseURL != "https://nic.example.org" || cfg.API.CSRFToken != "abc" {
		t.Fatalf("unexpected api config %+v", cfg.API)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Preference.Backend != "redis" || cfg.Preference.Profile != "ops" {
		t.Fatalf("unexpected preference config %+v", cfg.Preference)
	}
}

func TestInvalidPreferenceBackend(t *testing.T) {
	t.Setenv("PREFERENCE_BACKEND", "cookie")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
