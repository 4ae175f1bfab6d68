package lock

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/leelawheel/internal/model"
)

// DefaultTickInterval is the countdown display refresh period
const DefaultTickInterval = time.Second

// EvalFunc re-evaluates the lock on demand
type EvalFunc func() model.LockStatus

// Countdowns runs cosmetic per-player countdowns. Each one polls the lock on
// a ticker and stops when the lock opens, its context ends, or a newer draw
// for the same player supersedes it.
type Countdowns struct {
	interval time.Duration

	mu     sync.Mutex
	nextID uint64
	active map[model.PlayerKey]map[uint64]context.CancelFunc
}

// NewCountdowns creates a Countdowns registry. interval <= 0 uses DefaultTickInterval.
func NewCountdowns(interval time.Duration) *Countdowns {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Countdowns{
		interval: interval,
		active:   make(map[model.PlayerKey]map[uint64]context.CancelFunc),
	}
}

// Start begins a countdown for pk. The first status is sent immediately; the
// channel closes after an Open status or on cancellation.
func (c *Countdowns) Start(ctx context.Context, pk model.PlayerKey, eval EvalFunc) <-chan model.LockStatus {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	if c.active[pk] == nil {
		c.active[pk] = make(map[uint64]context.CancelFunc)
	}
	c.active[pk][id] = cancel
	c.mu.Unlock()

	out := make(chan model.LockStatus)
	go func() {
		defer c.remove(pk, id)
		defer cancel()
		run(ctx, c.interval, eval, out)
	}()
	return out
}

// Supersede cancels every running countdown for pk
func (c *Countdowns) Supersede(pk model.PlayerKey) {
	c.mu.Lock()
	cancels := c.active[pk]
	delete(c.active, pk)
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Active returns the number of running countdowns for pk
func (c *Countdowns) Active(pk model.PlayerKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active[pk])
}

func (c *Countdowns) remove(pk model.PlayerKey, id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.active[pk]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(c.active, pk)
		}
	}
}

func run(ctx context.Context, interval time.Duration, eval EvalFunc, out chan<- model.LockStatus) {
	defer close(out)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status := eval()
		select {
		case out <- status:
		case <-ctx.Done():
			return
		}
		if !status.IsLocked() {
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
