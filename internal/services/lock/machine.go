// Package lock decides whether a player may draw again.
package lock

import (
	"fmt"
	"math"
	"time"

	"github.com/mcoot/leelawheel/internal/model"
)

// Evaluate returns the lock status for a player whose last draw was at
// lastPlay (nil when they never drew). It is a pure function of its inputs.
//
// Calendar boundaries are taken in now's location.
func Evaluate(lastPlay *time.Time, now time.Time, cfg model.Config) model.LockStatus {
	if cfg.DevBypass || cfg.TestingMode {
		return model.OpenStatus()
	}
	if lastPlay == nil || lastPlay.IsZero() {
		return model.OpenStatus()
	}

	var until time.Time
	if cfg.DailyLock {
		until = NextMidnight(*lastPlay, now.Location())
	} else {
		if cfg.CooldownMinutes <= 0 {
			return model.OpenStatus()
		}
		until = lastPlay.Add(time.Duration(cfg.CooldownMinutes) * time.Minute)
	}

	if !now.Before(until) {
		return model.OpenStatus()
	}
	return model.LockStatus{
		State:     model.LockLocked,
		Remaining: until.Sub(now),
		Until:     until,
	}
}

// NextMidnight returns the first local midnight strictly after t
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

// FormatRemaining renders d as mm:ss, or h:mm:ss once it reaches an hour.
// Partial seconds round up so the display never shows 00:00 while locked.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "00:00"
	}
	secs := int64(math.Ceil(float64(d.Milliseconds()) / 1000))
	hh := secs / 3600
	mm := (secs % 3600) / 60
	ss := secs % 60
	if hh > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hh, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}
