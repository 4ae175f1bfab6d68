package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/leelawheel/internal/factory"
	"github.com/mcoot/leelawheel/internal/services/auth"
	"github.com/mcoot/leelawheel/internal/services/selection"
	redisstorage "github.com/mcoot/leelawheel/internal/storage/redis"
)

// serverConfig is everything main reads from the environment
type serverConfig struct {
	Port      int
	LogLevel  slog.Level
	Factory   factory.Config
	RateRPS   float64
	RateBurst int
}

// loadConfig builds the server config from getenv. Unset variables fall back
// to defaults; malformed ones are errors.
func loadConfig(getenv func(string) string) (serverConfig, error) {
	cfg := serverConfig{
		Port:      8080,
		LogLevel:  slog.LevelInfo,
		RateRPS:   2,
		RateBurst: 5,
	}

	var err error
	if v := getenv("PORT"); v != "" {
		if cfg.Port, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("PORT: %w", err)
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}
	if v := getenv("RATE_LIMIT_RPS"); v != "" {
		if cfg.RateRPS, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
	}
	if v := getenv("RATE_LIMIT_BURST"); v != "" {
		if cfg.RateBurst, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
	}

	fc := factory.Config{
		StorageType: strings.ToLower(getenv("STORAGE_TYPE")),
		DatabaseURL: getenv("DATABASE_URL"),
		DataDir:     getenv("DATA_DIR"),
		AuthConfig:  auth.Config{TokenHash: getenv("ADMIN_TOKEN_HASH")},
	}

	// Configure Redis if storage type is redis
	if fc.StorageType == factory.StorageTypeRedis {
		redisURL := getenv("REDIS_URL")
		if redisURL == "" {
			return cfg, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		redisCfg.Namespace = getenv("REDIS_NAMESPACE")
		fc.RedisConfig = &redisCfg
	}
	if fc.StorageType == factory.StorageTypeSQL && fc.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL required when STORAGE_TYPE=sql")
	}

	fc.Selector = selection.DefaultConfig()
	if v := getenv("IMAGE_BASE"); v != "" {
		fc.Selector.ImageBase = v
	}
	if v := getenv("FALLBACK_IMAGE"); v != "" {
		fc.Selector.FallbackImage = v
	}
	if v := getenv("HARDWARE_RANDOM"); v != "" {
		if fc.Selector.HardwareRandom, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("HARDWARE_RANDOM: %w", err)
		}
	}

	fc.Location = time.Local
	if v := getenv("TIMEZONE"); v != "" {
		if fc.Location, err = time.LoadLocation(v); err != nil {
			return cfg, fmt.Errorf("TIMEZONE: %w", err)
		}
	}

	cfg.Factory = fc
	return cfg, nil
}
