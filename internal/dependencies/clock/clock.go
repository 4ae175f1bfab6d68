package clock

import "time"

// Clock provides time operations that can be mocked for testing.
// Calendar decisions (day strings, midnight boundaries) use the location of
// the returned time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct {
	loc *time.Location
}

// New creates a RealClock in the process local time zone
func New() *RealClock {
	return &RealClock{loc: time.Local}
}

// NewInLocation creates a RealClock that reports times in loc
func NewInLocation(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{loc: loc}
}

// Now returns the current time in the clock's location
func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}
