package ratelimit

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidWindow is returned when a policy has a non-positive window
var ErrInvalidWindow = errors.New("rate limit window must be positive")

// Policy bounds the number of admitted requests per key within a window.
// A Limit of zero or less rejects every request.
type Policy struct {
	Limit  int
	Window time.Duration
}

// DefaultPolicy allows one request per hour per key
func DefaultPolicy() Policy {
	return Policy{
		Limit:  1,
		Window: time.Hour,
	}
}

// String renders the policy as "N per T", e.g. "1 per 1 hour"
func (p Policy) String() string {
	return fmt.Sprintf("%d per %s", p.Limit, formatWindow(p.Window))
}

func formatWindow(d time.Duration) string {
	units := []struct {
		size time.Duration
		name string
	}{
		{24 * time.Hour, "day"},
		{time.Hour, "hour"},
		{time.Minute, "minute"},
		{time.Second, "second"},
	}
	for _, u := range units {
		if d >= u.size && d%u.size == 0 {
			n := int64(d / u.size)
			if n == 1 {
				return "1 " + u.name
			}
			return fmt.Sprintf("%d %ss", n, u.name)
		}
	}
	return d.String()
}

// Decision is the outcome of an admission check
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

// window is the per-key state. One per key at most.
type window struct {
	start time.Time
	count int
}

// Limiter is an in-memory fixed-window limiter keyed by client.
//
// State lives only in this process: a restart clears it and separate
// instances never share counts.
type Limiter struct {
	policy Policy
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock overrides the time source used by Allow
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a limiter for the given policy
func New(policy Policy, opts ...Option) (*Limiter, error) {
	if policy.Window <= 0 {
		return nil, ErrInvalidWindow
	}

	l := &Limiter{
		policy:  policy,
		now:     time.Now,
		windows: make(map[string]*window),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Policy returns the configured policy
func (l *Limiter) Policy() Policy {
	return l.policy
}

// Allow checks and records a request for key at the current time
func (l *Limiter) Allow(key string) Decision {
	return l.CheckAndRecord(key, l.now())
}

// CheckAndRecord decides whether a request for key at now may proceed and,
// if so, counts it. The check and the update happen under one lock so two
// concurrent calls for the same key can never both take the last slot.
func (l *Limiter) CheckAndRecord(key string, now time.Time) Decision {
	if l.policy.Limit <= 0 {
		return Decision{
			Allowed:    false,
			Limit:      l.policy.Limit,
			RetryAfter: l.policy.Window,
			ResetAt:    now.Add(l.policy.Window),
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[key]
	if w == nil || l.expired(w, now) {
		w = &window{start: now}
		l.windows[key] = w
	}

	resetAt := w.start.Add(l.policy.Window)

	if w.count >= l.policy.Limit {
		return Decision{
			Allowed:    false,
			Limit:      l.policy.Limit,
			Remaining:  0,
			RetryAfter: resetAt.Sub(now),
			ResetAt:    resetAt,
		}
	}

	w.count++
	return Decision{
		Allowed:   true,
		Limit:     l.policy.Limit,
		Remaining: l.policy.Limit - w.count,
		ResetAt:   resetAt,
	}
}

func (l *Limiter) expired(w *window, now time.Time) bool {
	return now.Sub(w.start) >= l.policy.Window
}

// Prune removes windows that have expired at now and returns how many were
// removed. An expired window behaves exactly like a missing one, so pruning
// never changes a later decision.
func (l *Limiter) Prune(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if l.expired(w, now) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
