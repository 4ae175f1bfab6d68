package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/leelawheel/internal/factory"
	"github.com/mcoot/leelawheel/internal/services/selection"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "", cfg.Factory.StorageType)
	assert.Equal(t, selection.DefaultConfig(), cfg.Factory.Selector)
	assert.Equal(t, time.Local, cfg.Factory.Location)
	assert.Nil(t, cfg.Factory.RedisConfig)
}

func TestLoadConfigFromEnv(t *testing.T) {
	cfg, err := loadConfig(envFrom(map[string]string{
		"PORT":             "9090",
		"LOG_LEVEL":        "debug",
		"STORAGE_TYPE":     "Redis",
		"REDIS_URL":        "redis://cache:6379/2",
		"REDIS_NAMESPACE":  "leela",
		"DATA_DIR":         "/srv/data",
		"IMAGE_BASE":       "/img/",
		"FALLBACK_IMAGE":   "/img/hero.jpg",
		"HARDWARE_RANDOM":  "true",
		"TIMEZONE":         "Asia/Bangkok",
		"ADMIN_TOKEN_HASH": "$2a$10$abc",
		"RATE_LIMIT_RPS":   "0.5",
		"RATE_LIMIT_BURST": "3",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, factory.StorageTypeRedis, cfg.Factory.StorageType)
	require.NotNil(t, cfg.Factory.RedisConfig)
	assert.Equal(t, "redis://cache:6379/2", cfg.Factory.RedisConfig.URL)
	assert.Equal(t, "leela", cfg.Factory.RedisConfig.Namespace)
	assert.Equal(t, "/srv/data", cfg.Factory.DataDir)
	assert.Equal(t, selection.Config{ImageBase: "/img/", FallbackImage: "/img/hero.jpg", HardwareRandom: true}, cfg.Factory.Selector)
	assert.Equal(t, "Asia/Bangkok", cfg.Factory.Location.String())
	assert.Equal(t, "$2a$10$abc", cfg.Factory.AuthConfig.TokenHash)
	assert.Equal(t, 0.5, cfg.RateRPS)
	assert.Equal(t, 3, cfg.RateBurst)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "http"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"redis without url", map[string]string{"STORAGE_TYPE": "redis"}},
		{"sql without url", map[string]string{"STORAGE_TYPE": "sql"}},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{"bad hardware random", map[string]string{"HARDWARE_RANDOM": "maybe"}},
		{"bad rps", map[string]string{"RATE_LIMIT_RPS": "fast"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(envFrom(tt.env))
			assert.Error(t, err)
		})
	}
}
