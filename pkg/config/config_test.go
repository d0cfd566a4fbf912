package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.JWT.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("HOTEL_NAME", "Hotel Las Palmas")
	t.Setenv("DB_MIN_CONNS", "3")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.JWT.Enabled())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "Hotel Las Palmas", cfg.App.HotelName)
	assert.Equal(t, int32(3), cfg.DB.MinConns)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "hotel", Password: "p@ss:word", DBName: "hotel", SSLMode: "disable"}
	assert.Equal(t, "postgres://hotel:p%40ss%3Aword@db:5432/hotel?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
