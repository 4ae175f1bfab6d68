package lock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/leelawheel/internal/model"
)

func cooldownConfig(minutes int) model.Config {
	return model.Config{CooldownMinutes: minutes, DailyLock: false}
}

func TestEvaluateNoPriorPlayIsOpen(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	status := Evaluate(nil, now, model.DefaultConfig())
	assert.Equal(t, model.LockOpen, status.State)
	assert.Zero(t, status.Remaining)

	zero := time.Time{}
	assert.False(t, Evaluate(&zero, now, model.DefaultConfig()).IsLocked())
}

func TestEvaluateBypassFlagsAlwaysOpen(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-time.Second)

	testing := model.DefaultConfig()
	testing.TestingMode = true
	assert.False(t, Evaluate(&last, now, testing).IsLocked())

	bypass := cooldownConfig(60)
	bypass.DevBypass = true
	assert.False(t, Evaluate(&last, now, bypass).IsLocked())

	future := now.Add(time.Hour)
	assert.False(t, Evaluate(&future, now, testing).IsLocked())
}

func TestEvaluateCooldown(t *testing.T) {
	last := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := cooldownConfig(60)

	at59 := last.Add(59 * time.Minute)
	status := Evaluate(&last, at59, cfg)
	assert.True(t, status.IsLocked())
	assert.Equal(t, time.Minute, status.Remaining)
	assert.Equal(t, last.Add(time.Hour), status.Until)

	at60 := last.Add(60*time.Minute + time.Second)
	assert.False(t, Evaluate(&last, at60, cfg).IsLocked())

	exact := last.Add(time.Hour)
	assert.False(t, Evaluate(&last, exact, cfg).IsLocked())
}

func TestEvaluateNonPositiveCooldownIsOpen(t *testing.T) {
	last := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := last.Add(time.Second)

	assert.False(t, Evaluate(&last, now, cooldownConfig(0)).IsLocked())
	assert.False(t, Evaluate(&last, now, cooldownConfig(-5)).IsLocked())
}

func TestEvaluateDailyLockBoundary(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	last := time.Date(2024, 1, 1, 23, 59, 59, 0, loc)
	cfg := model.DefaultConfig()

	beforeMidnight := time.Date(2024, 1, 2, 0, 0, 0, 0, loc).Add(-time.Millisecond)
	status := Evaluate(&last, beforeMidnight, cfg)
	assert.True(t, status.IsLocked())
	assert.Equal(t, time.Millisecond, status.Remaining)

	midnight := time.Date(2024, 1, 2, 0, 0, 0, 0, loc)
	assert.False(t, Evaluate(&last, midnight, cfg).IsLocked())
}

func TestEvaluateDailyLockUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	// 20:00 UTC on Jan 1 is 03:00 on Jan 2 in ICT
	last := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, loc)

	status := Evaluate(&last, now, model.DefaultConfig())
	assert.True(t, status.IsLocked())
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, loc), status.Until)
}

func TestEvaluateDailyLockIgnoresCooldown(t *testing.T) {
	last := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	cfg := model.Config{DailyLock: true, CooldownMinutes: 0}

	status := Evaluate(&last, last.Add(time.Hour), cfg)
	assert.True(t, status.IsLocked())
	assert.Equal(t, 15*time.Hour, status.Remaining)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	last := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := last.Add(17 * time.Minute)
	cfg := cooldownConfig(30)

	assert.Equal(t, Evaluate(&last, now, cfg), Evaluate(&last, now, cfg))
}

func TestNextMidnight(t *testing.T) {
	t1 := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), NextMidnight(t1, time.UTC))

	t2 := time.Date(2024, 2, 28, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), NextMidnight(t2, time.UTC))
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{time.Millisecond, "00:01"},
		{59 * time.Second, "00:59"},
		{time.Minute + 500*time.Millisecond, "01:01"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "1:00:00"},
		{15*time.Hour + 4*time.Minute + 3*time.Second, "15:04:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRemaining(tt.in), tt.in.String())
	}
}
