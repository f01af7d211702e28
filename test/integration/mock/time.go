package mock

import (
	"sync"
	"time"
)

// Time is a settable clock.
type Time struct {
	mu      sync.Mutex
	current time.Time
}

// NewTime returns a clock that starts at the wall clock time.
func NewTime() *Time {
	return &Time{current: time.Now().UTC()}
}

// SetCurrentTime fixes the clock at currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
}

// Now returns the current time of the clock.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
