// Package ratelimit implements a fixed window request counter keyed by client identity
//
// A window opens on the first hit for a key and lasts Policy.Window. Hits inside
// the window count up to Policy.Max; further hits are denied without counting.
// The first hit after the window closes replaces the entry with a fresh one.
// Nothing runs in the background: stale entries are replaced on access and
// stores bound their own growth
package ratelimit

import (
	"context"
	"time"

	"devsolutions/internal/platform/logger"
	ptime "devsolutions/internal/platform/time"
)

// Entry is the per key counter state
type Entry struct {
	Count   int
	ResetAt time.Time
}

// Policy is the window length and the accepted hits per window
type Policy struct {
	Window time.Duration
	Max    int
}

// Store performs the check and increment for one key atomically
// allowed is false when the entry is current and already at p.Max
type Store interface {
	Hit(ctx context.Context, key string, p Policy, now time.Time) (e Entry, allowed bool, err error)
}

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed    bool
	Count      int
	Limit      int
	ResetAt    time.Time
	RetryAfter time.Duration // zero when allowed
}

// Options configures a Limiter
type Options struct {
	Name   string // used in logs and store keys
	Window time.Duration
	Max    int
	Clock  ptime.Clock

	// FailClosed denies when the store errors; the default lets the request through
	FailClosed bool
}

// Defaults for the contact form and the API-wide limiter
const (
	ContactWindow = time.Hour
	ContactMax    = 5
	APIWindow     = time.Minute
	APIMax        = 100
)

// Limiter decides whether a client may proceed
type Limiter struct {
	store      Store
	policy     Policy
	clock      ptime.Clock
	name       string
	failClosed bool
}

// New builds a limiter over store; non-positive Window or Max fall back to the contact defaults
func New(store Store, o Options) *Limiter {
	if o.Window <= 0 {
		o.Window = ContactWindow
	}
	if o.Max <= 0 {
		o.Max = ContactMax
	}
	if o.Clock == nil {
		o.Clock = ptime.System
	}
	return &Limiter{
		store:      store,
		policy:     Policy{Window: o.Window, Max: o.Max},
		clock:      o.Clock,
		name:       o.Name,
		failClosed: o.FailClosed,
	}
}

// Policy returns the configured window and max
func (l *Limiter) Policy() Policy { return l.policy }

// Allow records a hit for clientID and reports whether it is within quota
func (l *Limiter) Allow(ctx context.Context, clientID string) Decision {
	now := l.clock.Now()
	e, ok, err := l.store.Hit(ctx, l.name+":"+clientID, l.policy, now)
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("limiter", l.name).Bool("fail_closed", l.failClosed).Msg("rate limit store failed")
		if l.failClosed {
			return Decision{Limit: l.policy.Max, ResetAt: now.Add(time.Second), RetryAfter: time.Second}
		}
		return Decision{Allowed: true, Limit: l.policy.Max}
	}

	d := Decision{Allowed: ok, Count: e.Count, Limit: l.policy.Max, ResetAt: e.ResetAt}
	if !ok {
		d.RetryAfter = max(e.ResetAt.Sub(now), 0)
	}
	return d
}

// Check is Allow shaped for middleware: it returns only the verdict and the retry hint
func (l *Limiter) Check(ctx context.Context, clientID string) (bool, time.Duration) {
	d := l.Allow(ctx, clientID)
	return d.Allowed, d.RetryAfter
}
