package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config captures all runtime configuration for the dashboard client.
type Config struct {
	HTTP       HTTPConfig
	API        APIConfig
	Redis      RedisConfig
	Preference PreferenceConfig
	Scheduler  SchedulerConfig
	Server     ServerConfig
}

// HTTPConfig holds gateway HTTP server related configuration.
type HTTPConfig struct {
	Port string
}

// APIConfig describes how to reach and authenticate against the dashboard API.
type APIConfig struct {
	BaseURL   string
	Token     string
	CSRFToken string
	SessionID string
	Timeout   time.Duration
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PreferenceConfig selects where UI preferences are stored.
type PreferenceConfig struct {
	Backend string
	File    string
	Profile string
}

// SchedulerConfig holds inbox refresh settings.
type SchedulerConfig struct {
	Interval time.Duration
}

// ServerConfig stores general server runtime configuration.
type ServerConfig struct {
	ShutdownTimeout time.Duration
}

const minSyncInterval = 30 * time.Second

// Load builds configuration by reading environment variables with sane defaults.
func Load() (*Config, error) {
	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	apiTimeout, err := getDuration("HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}

	interval, err := getDuration("SYNC_INTERVAL", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}
	if interval < minSyncInterval {
		interval = minSyncInterval
	}

	shutdownTimeout, err := getDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	backend := strings.ToLower(getString("PREFERENCE_BACKEND", "file"))
	if backend != "file" && backend != "redis" {
		return nil, fmt.Errorf("invalid PREFERENCE_BACKEND: %q", backend)
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port: getString("HTTP_PORT", "8083"),
		},
		API: APIConfig{
			BaseURL:   getString("API_BASE_URL", "http://localhost:8000"),
			Token:     getString("API_TOKEN", ""),
			CSRFToken: getString("CSRF_TOKEN", ""),
			SessionID: getString("SESSION_ID", ""),
			Timeout:   apiTimeout,
		},
		Redis: RedisConfig{
			Addr:     getString("REDIS_ADDR", "localhost:6379"),
			Password: getString("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Preference: PreferenceConfig{
			Backend: backend,
			File:    getString("PREFERENCE_FILE", defaultPreferenceFile()),
			Profile: getString("PROFILE_ID", "default"),
		},
		Scheduler: SchedulerConfig{
			Interval: interval,
		},
		Server: ServerConfig{
			ShutdownTimeout: shutdownTimeout,
		},
	}

	return cfg, nil
}

func defaultPreferenceFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "dashinbox.yaml"
	}
	return filepath.Join(dir, "dashinbox", "preferences.yaml")
}

func getString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) (int, error) {
	if val := os.Getenv(key); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	}
	return def, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	if val := os.Getenv(key); val != "" {
		return time.ParseDuration(val)
	}
	return def, nil
}
