package model

import "time"

// HistoryEntry records one quote shown to a player
type HistoryEntry struct {
	Index     int       `json:"i"`
	Timestamp time.Time `json:"ts"`
}

// SelectionResult is the output of one draw. The same shape is persisted as
// the player's last result so it can be restored within the lock period.
type SelectionResult struct {
	QuoteIndex int       `json:"quoteIndex"`
	ImagePath  string    `json:"imagePath"`
	Timestamp  time.Time `json:"ts"`
	Bypass     bool      `json:"bypass,omitempty"`
}

// LockState is the state of the replay lock
type LockState string

const (
	LockOpen   LockState = "open"
	LockLocked LockState = "locked"
)

// LockStatus is the result of evaluating the lock for a player
type LockStatus struct {
	State     LockState
	Remaining time.Duration
	Until     time.Time // zero when open
}

// OpenStatus returns an Open lock status
func OpenStatus() LockStatus {
	return LockStatus{State: LockOpen}
}

// IsLocked reports whether drawing is currently blocked
func (s LockStatus) IsLocked() bool {
	return s.State == LockLocked
}
