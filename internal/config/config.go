// Package config loads service configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	StoreBackend string
	SupabaseURL  string
	SupabaseKey  string
	SQLitePath   string
	StoreTimeout time.Duration

	// OpenWeather current-condition collaborator. Empty key disables the
	// lookup; projections then use the neutral multiplier unless the caller
	// supplies a condition.
	OpenWeatherKey  string
	WeatherTimeout  time.Duration
	WeatherCacheTTL time.Duration

	Transport string
	HTTPAddr  string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is merged first when present.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is the normal production case.
	_ = godotenv.Load()

	storeTimeout, err := parseDuration("STORE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	weatherTTL, err := parseDuration("WEATHER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}

	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if supabaseKey == "" {
		supabaseKey = os.Getenv("SUPABASE_ANON_KEY")
	}

	cfg := &Config{
		StoreBackend: envOrDefault("STORE_BACKEND", BackendSupabase),
		SupabaseURL:  os.Getenv("SUPABASE_URL"),
		SupabaseKey:  supabaseKey,
		SQLitePath:   envOrDefault("SQLITE_PATH", "hazards.db"),
		StoreTimeout: storeTimeout,

		OpenWeatherKey:  os.Getenv("OPENWEATHER_API_KEY"),
		WeatherTimeout:  weatherTimeout,
		WeatherCacheTTL: weatherTTL,

		Transport: envOrDefault("TRANSPORT", TransportStdio),
		HTTPAddr:  envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
	}

	switch cfg.StoreBackend {
	case BackendSupabase:
		if cfg.SupabaseURL == "" {
			return nil, errors.New("SUPABASE_URL is required for the supabase backend")
		}
		if cfg.SupabaseKey == "" {
			return nil, errors.New("SUPABASE_SERVICE_ROLE_KEY or SUPABASE_ANON_KEY is required for the supabase backend")
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (use %s or %s)", cfg.StoreBackend, BackendSupabase, BackendSQLite)
	}

	if cfg.Transport != TransportStdio && cfg.Transport != TransportHTTP {
		return nil, fmt.Errorf("unknown TRANSPORT %q (use %s or %s)", cfg.Transport, TransportStdio, TransportHTTP)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}
