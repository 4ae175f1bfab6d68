package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Namespace is prepended to every key so several deployments can share
	// one Redis database. Empty means keys are stored as given.
	Namespace string

	// DialTimeout bounds the startup ping
	DialTimeout time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
	}
}

// key applies the configured namespace
func (c Config) key(k string) string {
	if c.Namespace == "" {
		return k
	}
	return c.Namespace + ":" + k
}

// Validate reports a malformed URL without connecting
func (c Config) Validate() error {
	_, err := redis.ParseURL(c.URL)
	return err
}
