// Package time contains time related helpers
package time

import (
	"sync"
	"time"
)

// Clock returns the current time; tests swap it for a fixed or stepping source
type Clock func() time.Time

// System is the wall clock
var System Clock = time.Now

// Now calls c, falling back to the wall clock when c is nil
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Fixed returns a clock that always reads t
func Fixed(t time.Time) Clock { return func() time.Time { return t } }

// Manual is a settable clock for tests
type Manual struct {
	mu sync.Mutex
	t  time.Time
}

// NewManual returns a manual clock starting at t
func NewManual(t time.Time) *Manual { return &Manual{t: t} }

// Clock exposes m as a Clock
func (m *Manual) Clock() Clock {
	return func() time.Time {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.t
	}
}

// Advance moves the clock forward by d
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.t = m.t.Add(d)
	m.mu.Unlock()
}

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
