package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, int64(5<<20), cfg.Uploads.MaxBytes)
	assert.True(t, cfg.Seed)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"PORT":            "8080",
		"JWT_TTL":         "2h",
		"STORE_BACKEND":   "mongo",
		"REDIS_ADDR":      "localhost:6379",
		"ALLOWED_ORIGINS": "http://localhost:5173,https://twittoo.example",
		"SEED":            "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, BackendMongo, cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"http://localhost:5173", "https://twittoo.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Seed)
}

func TestLoadFrom_RequiresSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadFrom_RejectsUnknownBackend(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":    "s3cret",
		"STORE_BACKEND": "sqlite",
	}))
	assert.ErrorContains(t, err, "STORE_BACKEND")
}

func TestLoadFrom_Production(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"ENV":        "production",
		"LOG_PRETTY": "true",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Log.Pretty)
}
