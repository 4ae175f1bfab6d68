// Package draw runs the draw sequence: lock check, selection, persistence
// and lock recomputation.
package draw

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/leelawheel/internal/dependencies/clock"
	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/services/catalog"
	"github.com/mcoot/leelawheel/internal/services/history"
	"github.com/mcoot/leelawheel/internal/services/lock"
	"github.com/mcoot/leelawheel/internal/services/selection"
	"github.com/mcoot/leelawheel/internal/services/session"
	"github.com/mcoot/leelawheel/internal/services/settings"
)

// Outcome is the result of a successful draw
type Outcome struct {
	Player       model.PlayerIdentity
	Key          model.PlayerKey
	Result       model.SelectionResult
	Quote        model.Quote
	Lock         model.LockStatus
	CardFilename string
}

// Status describes where a player stands without drawing
type Status struct {
	Player   model.PlayerIdentity
	Key      model.PlayerKey
	Lock     model.LockStatus
	LastPlay *time.Time
	// Restored is the last result while it is still covered by the lock
	Restored      *model.SelectionResult
	RestoredQuote *model.Quote
}

// Controller coordinates draws. Draws for the same player are serialized;
// a draw requested while another is in flight fails with ErrDrawInProgress.
type Controller struct {
	catalog    *catalog.Service
	settings   settings.ServiceInterface
	history    history.ServiceInterface
	sessions   session.ServiceInterface
	selector   *selection.Selector
	countdowns *lock.Countdowns
	clock      clock.Clock
	metrics    *Metrics
	logger     *slog.Logger

	mu      sync.Mutex
	players map[model.PlayerKey]*sync.Mutex
}

// NewController creates a new draw Controller
func NewController(
	catalog *catalog.Service,
	settings settings.ServiceInterface,
	history history.ServiceInterface,
	sessions session.ServiceInterface,
	selector *selection.Selector,
	countdowns *lock.Countdowns,
	clock clock.Clock,
	metrics *Metrics,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		catalog:    catalog,
		settings:   settings,
		history:    history,
		sessions:   sessions,
		selector:   selector,
		countdowns: countdowns,
		clock:      clock,
		metrics:    metrics,
		logger:     logger,
		players:    make(map[model.PlayerKey]*sync.Mutex),
	}
}

// Draw performs one draw for player. A locked player gets a *model.LockedError.
func (c *Controller) Draw(ctx context.Context, player model.PlayerIdentity) (*Outcome, error) {
	player = player.Normalized()
	if err := player.Validate(); err != nil {
		c.metrics.observe(OutcomeInvalid)
		return nil, err
	}
	if !c.catalog.Ready() {
		c.metrics.observe(OutcomeUnavailable)
		return nil, model.ErrCatalogUnavailable
	}

	pk := model.NewPlayerKey(player)
	playerMu := c.playerLock(pk)
	if !playerMu.TryLock() {
		c.metrics.observe(OutcomeInProgress)
		return nil, model.ErrDrawInProgress
	}
	defer playerMu.Unlock()

	outcome, err := c.draw(ctx, player, pk)
	if err != nil {
		var locked *model.LockedError
		if errors.As(err, &locked) {
			c.metrics.observe(OutcomeLocked)
		} else {
			c.metrics.observe(OutcomeError)
		}
		return nil, err
	}

	if outcome.Result.Bypass {
		c.metrics.observe(OutcomeBypass)
	} else {
		c.metrics.observe(OutcomeDrawn)
	}
	return outcome, nil
}

func (c *Controller) draw(ctx context.Context, player model.PlayerIdentity, pk model.PlayerKey) (*Outcome, error) {
	now := c.clock.Now()
	cfg := c.settings.Current()
	cat := c.catalog.Catalog()

	lastPlay, err := c.sessions.LastPlay(ctx, pk)
	if err != nil {
		return nil, err
	}
	if status := lock.Evaluate(lastPlay, now, cfg); status.IsLocked() {
		c.logger.Info("draw refused, player locked",
			slog.String("player_key", pk.String()),
			slog.Duration("remaining", status.Remaining),
		)
		return nil, &model.LockedError{Status: status}
	}

	var entries []model.HistoryEntry
	if !cfg.DevBypass {
		entries, err = c.history.Get(ctx, pk)
		if err != nil {
			return nil, err
		}
	}

	result, err := c.selector.Select(selection.Request{
		Player:  player,
		Now:     now,
		Catalog: cat,
		History: entries,
		Config:  cfg,
	})
	if err != nil {
		return nil, err
	}
	quote, ok := cat.Quote(result.QuoteIndex)
	if !ok {
		return nil, model.ErrCatalogUnavailable
	}
	if !result.Bypass && result.QuoteIndex != c.baseIndex(cat, player, now) {
		c.metrics.historyHit.Inc()
	}

	if !result.Bypass {
		if err := c.history.Push(ctx, pk, result.QuoteIndex); err != nil {
			return nil, err
		}
	}
	if err := c.sessions.Save(ctx, pk, result); err != nil {
		return nil, err
	}
	c.countdowns.Supersede(pk)

	played := result.Timestamp
	outcome := &Outcome{
		Player:       player,
		Key:          pk,
		Result:       result,
		Quote:        quote,
		Lock:         lock.Evaluate(&played, now, cfg),
		CardFilename: CardFilename(player, result.QuoteIndex, now),
	}

	c.logger.Info("draw completed",
		slog.String("player_key", pk.String()),
		slog.Int("quote_index", result.QuoteIndex),
		slog.String("image", result.ImagePath),
		slog.Bool("bypass", result.Bypass),
		slog.String("lock", string(outcome.Lock.State)),
	)
	return outcome, nil
}

func (c *Controller) baseIndex(cat *model.Catalog, player model.PlayerIdentity, now time.Time) int {
	n := cat.QuoteCount()
	perm := selection.DailyPermutation(n, selection.DayString(now))
	return perm[selection.NameSlot(n, player)]
}

// Status evaluates the lock for player and includes the restorable result
func (c *Controller) Status(ctx context.Context, player model.PlayerIdentity) (*Status, error) {
	player = player.Normalized()
	if err := player.Validate(); err != nil {
		return nil, err
	}

	pk := model.NewPlayerKey(player)
	now := c.clock.Now()
	cfg := c.settings.Current()

	lastPlay, err := c.sessions.LastPlay(ctx, pk)
	if err != nil {
		return nil, err
	}

	status := &Status{
		Player:   player,
		Key:      pk,
		Lock:     lock.Evaluate(lastPlay, now, cfg),
		LastPlay: lastPlay,
	}

	if cat := c.catalog.Catalog(); cat != nil {
		restored, err := c.sessions.Restore(ctx, pk, now, cfg, cat.QuoteCount())
		if err != nil {
			return nil, err
		}
		if restored != nil {
			if q, ok := cat.Quote(restored.QuoteIndex); ok {
				status.Restored = restored
				status.RestoredQuote = &q
			}
		}
	}
	return status, nil
}

// History returns the player's quotes shown in the trailing window
func (c *Controller) History(ctx context.Context, player model.PlayerIdentity) ([]model.HistoryEntry, error) {
	player = player.Normalized()
	if err := player.Validate(); err != nil {
		return nil, err
	}
	return c.history.Get(ctx, model.NewPlayerKey(player))
}

// Countdown streams lock statuses for player until the lock opens, ctx ends,
// or the player draws again.
func (c *Controller) Countdown(ctx context.Context, player model.PlayerIdentity) (<-chan model.LockStatus, error) {
	player = player.Normalized()
	if err := player.Validate(); err != nil {
		return nil, err
	}
	pk := model.NewPlayerKey(player)

	lastPlay, err := c.sessions.LastPlay(ctx, pk)
	if err != nil {
		return nil, err
	}
	cfg := c.settings.Current()

	eval := func() model.LockStatus {
		return lock.Evaluate(lastPlay, c.clock.Now(), cfg)
	}

	c.metrics.countdowns.Inc()
	in := c.countdowns.Start(ctx, pk, eval)
	out := make(chan model.LockStatus)
	go func() {
		defer close(out)
		defer c.metrics.countdowns.Dec()
		for status := range in {
			select {
			case out <- status:
			case <-ctx.Done():
				// drain so the countdown goroutine can exit
				for range in {
				}
				return
			}
		}
	}()
	return out, nil
}

func (c *Controller) playerLock(pk model.PlayerKey) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.players[pk]
	if !ok {
		m = &sync.Mutex{}
		c.players[pk] = m
	}
	return m
}
