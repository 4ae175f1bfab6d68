// Package resilient wraps a primary store so that an unavailable backend
// degrades to in-memory operation instead of failing draws.
package resilient

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/leelawheel/internal/dependencies/clock"
	"github.com/mcoot/leelawheel/internal/storage"
	"github.com/mcoot/leelawheel/internal/storage/memory"
)

// DefaultRetryAfter is how long the primary is bypassed after a failure
const DefaultRetryAfter = 30 * time.Second

// Opener connects to a primary backend
type Opener func() (storage.Store, error)

// Storage never returns an error to its callers. Every write lands in an
// in-memory shadow; while the primary is failing, reads are served from it.
// Keys written during an outage are replayed to the primary before it is
// read again.
type Storage struct {
	open       Opener
	shadow     *memory.Storage
	clock      clock.Clock
	logger     *slog.Logger
	retryAfter time.Duration

	mu            sync.Mutex
	primary       storage.Store
	degradedUntil time.Time
	dirty         map[string]struct{}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// New wraps a connected primary. retryAfter <= 0 uses DefaultRetryAfter.
func New(primary storage.Store, clk clock.Clock, retryAfter time.Duration, logger *slog.Logger) *Storage {
	s := newStorage(clk, retryAfter, logger)
	s.primary = primary
	return s
}

// Connect opens the primary with open. If that fails the store starts
// degraded and open is retried once the retry window has passed.
func Connect(open Opener, clk clock.Clock, retryAfter time.Duration, logger *slog.Logger) *Storage {
	s := newStorage(clk, retryAfter, logger)
	s.open = open
	if _, err := s.backend(); err != nil {
		s.markDegraded("connect", "", err)
	}
	return s
}

func newStorage(clk clock.Clock, retryAfter time.Duration, logger *slog.Logger) *Storage {
	if retryAfter <= 0 {
		retryAfter = DefaultRetryAfter
	}
	return &Storage{
		shadow:     memory.New(),
		clock:      clk,
		logger:     logger,
		retryAfter: retryAfter,
		dirty:      make(map[string]struct{}),
	}
}

// Degraded reports whether the primary is currently being bypassed
func (s *Storage) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Now().Before(s.degradedUntil)
}

// Pending returns how many keys are waiting to be written back
func (s *Storage) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty)
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if p, ok := s.available(ctx, "get", key); ok {
		value, found, err := p.Get(ctx, key)
		if err == nil {
			return value, found, nil
		}
		s.markDegraded("get", key, err)
	}
	return s.shadow.Get(ctx, key)
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	_ = s.shadow.Set(ctx, key, value)
	if p, ok := s.available(ctx, "set", key); ok {
		err := p.Set(ctx, key, value)
		if err == nil {
			return nil
		}
		s.markDegraded("set", key, err)
	}

	s.mu.Lock()
	s.dirty[key] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Close closes the primary store, if one was ever connected
func (s *Storage) Close() error {
	s.mu.Lock()
	p := s.primary
	s.mu.Unlock()
	if p == nil {
		return nil
	}
	return p.Close()
}

// available returns the primary when it may be used: not inside the retry
// window, connected, and with every outage write replayed.
func (s *Storage) available(ctx context.Context, op, key string) (storage.Store, bool) {
	if s.Degraded() {
		return nil, false
	}
	p, err := s.backend()
	if err != nil {
		s.markDegraded(op, key, err)
		return nil, false
	}
	if err := s.replay(ctx, p); err != nil {
		s.markDegraded("replay", key, err)
		return nil, false
	}
	return p, true
}

func (s *Storage) backend() (storage.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.primary != nil {
		return s.primary, nil
	}
	p, err := s.open()
	if err != nil {
		return nil, err
	}
	s.primary = p
	s.logger.Info("storage connected")
	return p, nil
}

// replay writes the shadow value of every dirty key to p. A key stays dirty
// until its write succeeds.
func (s *Storage) replay(ctx context.Context, p storage.Store) error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.dirty))
	for k := range s.dirty {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	for _, k := range keys {
		value, found, _ := s.shadow.Get(ctx, k)
		if found {
			if err := p.Set(ctx, k, value); err != nil {
				return err
			}
		}
		s.mu.Lock()
		delete(s.dirty, k)
		s.mu.Unlock()
	}
	if len(keys) > 0 {
		s.logger.Info("storage recovered, outage writes replayed", slog.Int("keys", len(keys)))
	}
	return nil
}

func (s *Storage) markDegraded(op, key string, err error) {
	s.mu.Lock()
	s.degradedUntil = s.clock.Now().Add(s.retryAfter)
	s.mu.Unlock()

	s.logger.Warn("storage unavailable, using in-memory state",
		slog.String("op", op),
		slog.String("key", key),
		slog.Duration("retry_after", s.retryAfter),
		slog.String("error", err.Error()),
	)
}
