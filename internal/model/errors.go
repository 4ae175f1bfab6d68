package model

import (
	"errors"
	"fmt"
	"time"
)

// Common errors used across the application
var (
	// Player errors
	ErrInvalidPlayer = errors.New("first and last name are required")

	// Draw errors
	ErrCatalogUnavailable = errors.New("quote catalog is not loaded")
	ErrDrawInProgress     = errors.New("a draw is already in progress for this player")
	ErrLocked             = errors.New("player is locked out of drawing")

	// Config errors
	ErrInvalidConfig = errors.New("invalid config")
)

// LockedError carries the lock status that blocked a draw
type LockedError struct {
	Status LockStatus
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s for another %s", ErrLocked.Error(), e.Status.Remaining.Round(time.Second))
}

// Is matches ErrLocked
func (e *LockedError) Is(target error) bool {
	return target == ErrLocked
}
