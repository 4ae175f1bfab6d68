package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/services/lock"
	"github.com/mcoot/leelawheel/internal/storage"
)

// Service persists each player's last play time and last result
type Service struct {
	store  storage.Store
	logger *slog.Logger
}

// New creates a new session Service
func New(store storage.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Save records result as the player's last result and its timestamp as the
// last play time.
func (s *Service) Save(ctx context.Context, pk model.PlayerKey, result model.SelectionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, storage.LastResultKey(pk), string(data)); err != nil {
		return fmt.Errorf("save last result: %w", err)
	}

	millis := strconv.FormatInt(result.Timestamp.UnixMilli(), 10)
	if err := s.store.Set(ctx, storage.LastPlayKey(pk), millis); err != nil {
		return fmt.Errorf("save last play: %w", err)
	}
	return nil
}

// LastPlay returns the player's last play time, or nil if they never played
// or the stored value is unreadable.
func (s *Service) LastPlay(ctx context.Context, pk model.PlayerKey) (*time.Time, error) {
	raw, found, err := s.store.Get(ctx, storage.LastPlayKey(pk))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || millis <= 0 {
		s.logger.Warn("ignoring malformed last play",
			slog.String("player_key", pk.String()),
			slog.String("value", raw),
		)
		return nil, nil
	}

	t := time.UnixMilli(millis)
	return &t, nil
}

// LastResult returns the stored last result without any lock check
func (s *Service) LastResult(ctx context.Context, pk model.PlayerKey) (*model.SelectionResult, error) {
	raw, found, err := s.store.Get(ctx, storage.LastResultKey(pk))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var result model.SelectionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Warn("ignoring malformed last result",
			slog.String("player_key", pk.String()),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return &result, nil
}

// Restore returns the last result while it is still covered by the lock.
// It returns nil when there is nothing to restore, when the quote index no
// longer fits the catalog, or when the lock has already opened.
func (s *Service) Restore(ctx context.Context, pk model.PlayerKey, now time.Time, cfg model.Config, catalogSize int) (*model.SelectionResult, error) {
	result, err := s.LastResult(ctx, pk)
	if err != nil || result == nil {
		return nil, err
	}
	if result.QuoteIndex < 0 || result.QuoteIndex >= catalogSize {
		return nil, nil
	}
	if result.Timestamp.IsZero() {
		return nil, nil
	}

	ts := result.Timestamp
	if !lock.Evaluate(&ts, now, cfg).IsLocked() {
		return nil, nil
	}
	return result, nil
}

// ServiceInterface is the behavior other packages depend on
type ServiceInterface interface {
	Save(ctx context.Context, pk model.PlayerKey, result model.SelectionResult) error
	LastPlay(ctx context.Context, pk model.PlayerKey) (*time.Time, error)
	LastResult(ctx context.Context, pk model.PlayerKey) (*model.SelectionResult, error)
	Restore(ctx context.Context, pk model.PlayerKey, now time.Time, cfg model.Config, catalogSize int) (*model.SelectionResult, error)
}

var _ ServiceInterface = (*Service)(nil)
