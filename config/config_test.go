package config_test

import (
	"testing"
	"time"

	"go-gin-catalog/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "STORAGE_DRIVER", "ERROR_TYPE_BASE", "CORS_ORIGINS",
		"MAX_BODY_BYTES", "SHUTDOWN_TIMEOUT", "DB_HOST", "DB_PORT", "DB_NAME",
		"REDIS_HOST", "REDIS_PORT", "REDIS_DB", "RATE_LIMIT_ENABLED", "RATE_LIMIT", "RATE_LIMIT_STORE",
		"CACHE_ENABLED", "CACHE_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, config.StorageMemory, cfg.Server.StorageDriver)
		assert.Equal(t, "https://api.tiqueteracatalogo.com/errors", cfg.Server.ErrorTypeBase)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
		assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
		assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
		assert.False(t, cfg.RateLimit.Enabled)
		assert.False(t, cfg.Cache.Enabled)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.False(t, cfg.UsesRedis())
	})

	t.Run("Overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9090")
		t.Setenv("STORAGE_DRIVER", "POSTGRES")
		t.Setenv("DB_HOST", "db")
		t.Setenv("ERROR_TYPE_BASE", "https://errors.example.com/")
		t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
		t.Setenv("RATE_LIMIT_ENABLED", "true")
		t.Setenv("RATE_LIMIT_STORE", "redis")
		t.Setenv("REDIS_DB", "3")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, config.StoragePostgres, cfg.Server.StorageDriver)
		assert.Equal(t, "db", cfg.Database.Host)
		assert.Equal(t, "https://errors.example.com", cfg.Server.ErrorTypeBase)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
		assert.Equal(t, 3, cfg.Redis.DB)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.True(t, cfg.UsesRedis())
	})

	t.Run("Cache needs redis", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DB_HOST", "db")
		t.Setenv("CACHE_ENABLED", "true")
		t.Setenv("CACHE_TTL", "30s")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
		assert.True(t, cfg.UsesRedis())
	})

	t.Run("Cache is rejected with memory storage", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CACHE_ENABLED", "true")

		_, err := config.LoadConfig()

		require.Error(t, err)
		assert.ErrorContains(t, err, "CACHE_ENABLED requires STORAGE_DRIVER=postgres")
	})

	t.Run("Invalid values are reported together", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "mongo")
		t.Setenv("REDIS_DB", "one")
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		t.Setenv("CACHE_TTL", "-1s")

		_, err := config.LoadConfig()

		require.Error(t, err)
		assert.ErrorContains(t, err, "STORAGE_DRIVER")
		assert.ErrorContains(t, err, "REDIS_DB")
		assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT")
		assert.ErrorContains(t, err, "CACHE_TTL")
	})

	t.Run("Postgres requires DB_HOST", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "postgres")

		_, err := config.LoadConfig()

		require.Error(t, err)
		assert.ErrorContains(t, err, "DB_HOST")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := config.LoadTestConfig()

	dsn := cfg.Database.DSN()

	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "port=5433")
	assert.Contains(t, dsn, "dbname=test_db")
	assert.Contains(t, dsn, "timezone=UTC")
}
