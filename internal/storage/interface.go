package storage

import "context"

// Store is the narrow key-value capability the draw engine persists through.
// Values are opaque strings; callers own their encoding.
type Store interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Close releases any underlying connections
	Close() error
}
