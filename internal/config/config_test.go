package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE_BACKEND", "SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY", "SUPABASE_ANON_KEY",
		"SQLITE_PATH", "STORE_TIMEOUT", "OPENWEATHER_API_KEY", "WEATHER_TIMEOUT",
		"WEATHER_CACHE_TTL", "TRANSPORT", "HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("supabase defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
		t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, BackendSupabase, cfg.StoreBackend)
		assert.Equal(t, "service-key", cfg.SupabaseKey)
		assert.Equal(t, TransportStdio, cfg.Transport)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 10*time.Second, cfg.StoreTimeout)
		assert.Equal(t, 10*time.Minute, cfg.WeatherCacheTTL)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("anon key is the fallback", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
		t.Setenv("SUPABASE_ANON_KEY", "anon-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "anon-key", cfg.SupabaseKey)
	})

	t.Run("service role key wins over anon key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
		t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
		t.Setenv("SUPABASE_ANON_KEY", "anon-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "service-key", cfg.SupabaseKey)
	})

	t.Run("supabase backend requires url and key", func(t *testing.T) {
		clearEnv(t)
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SUPABASE_URL")

		t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SUPABASE_SERVICE_ROLE_KEY")
	})

	t.Run("sqlite backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "sqlite")
		t.Setenv("SQLITE_PATH", "/tmp/hazards.db")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, BackendSQLite, cfg.StoreBackend)
		assert.Equal(t, "/tmp/hazards.db", cfg.SQLitePath)
	})

	t.Run("unknown backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "dynamo")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORE_BACKEND")
	})

	t.Run("unknown transport", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "sqlite")
		t.Setenv("TRANSPORT", "carrier-pigeon")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TRANSPORT")
	})

	t.Run("invalid duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "sqlite")
		t.Setenv("WEATHER_CACHE_TTL", "soon")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "WEATHER_CACHE_TTL")
	})
}
