package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/leelawheel/internal/dependencies/clock"
	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/storage"
)

const (
	// Window is the trailing span within which a shown quote is avoided
	Window = 7 * 24 * time.Hour

	// MaxEntries bounds the retained history per player
	MaxEntries = 64

	// MaxProbes bounds the forward search in PickNonRepeating
	MaxProbes = 4
)

// Service records and reads the per-player no-repeat history
type Service struct {
	store  storage.Store
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new history Service
func New(store storage.Store, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Get returns the player's entries from the last seven days, oldest first.
// Stale entries stay in storage until the next Push.
func (s *Service) Get(ctx context.Context, pk model.PlayerKey) ([]model.HistoryEntry, error) {
	entries, err := s.load(ctx, pk)
	if err != nil {
		return nil, err
	}
	return withinWindow(entries, s.clock.Now()), nil
}

// Push appends index at the current time. Entries outside the window are
// trimmed, and only the newest MaxEntries are kept.
func (s *Service) Push(ctx context.Context, pk model.PlayerKey, index int) error {
	now := s.clock.Now()

	entries, err := s.load(ctx, pk)
	if err != nil {
		return err
	}

	entries = withinWindow(entries, now)
	entries = append(entries, model.HistoryEntry{Index: index, Timestamp: now})
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, storage.HistoryKey(pk), string(data)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, pk model.PlayerKey) ([]model.HistoryEntry, error) {
	raw, found, err := s.store.Get(ctx, storage.HistoryKey(pk))
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("discarding malformed history",
			slog.String("player_key", pk.String()),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return entries, nil
}

func withinWindow(entries []model.HistoryEntry, now time.Time) []model.HistoryEntry {
	cutoff := now.Add(-Window)
	kept := make([]model.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}

// Indexes returns the set of indexes present in entries
func Indexes(entries []model.HistoryEntry) map[int]struct{} {
	set := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		set[e.Index] = struct{}{}
	}
	return set
}

// PickNonRepeating returns base when it is not in history. Otherwise it walks
// forward from base's position in perm, wrapping, for up to MaxProbes
// candidates and returns the first unused one. When every probe is used the
// repeat is accepted and base is returned.
func PickNonRepeating(base int, perm []int, entries []model.HistoryEntry) int {
	used := Indexes(entries)
	if _, seen := used[base]; !seen || len(perm) == 0 {
		return base
	}

	pos := 0
	for i, v := range perm {
		if v == base {
			pos = i
			break
		}
	}

	n := len(perm)
	for k := 1; k <= MaxProbes; k++ {
		candidate := perm[(pos+k)%n]
		if _, seen := used[candidate]; !seen {
			return candidate
		}
	}
	return base
}

// ServiceInterface is the behavior the draw controller depends on
type ServiceInterface interface {
	Get(ctx context.Context, pk model.PlayerKey) ([]model.HistoryEntry, error)
	Push(ctx context.Context, pk model.PlayerKey, index int) error
}

var _ ServiceInterface = (*Service)(nil)
