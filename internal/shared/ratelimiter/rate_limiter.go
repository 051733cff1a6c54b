// Package ratelimiter throttles calls to external APIs with a fixed window.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter blocks until another call is allowed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows at most limit calls per interval. It is safe for concurrent use.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
	now       func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a limiter allowing limit calls per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// reserve counts a call and returns how long the caller must wait before making it.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for now.Sub(rl.lastReset) >= rl.interval {
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count -= rl.limit
		if rl.count < 0 {
			rl.count = 0
		}
	}

	rl.count++
	if rl.count <= rl.limit {
		return 0
	}
	// Calls beyond the limit are pushed into the window they fall into.
	windows := (rl.count - 1) / rl.limit
	return rl.lastReset.Add(time.Duration(windows) * rl.interval).Sub(now)
}

// release gives back a slot reserved by a call that will not be made.
func (rl *RateLimiter) release() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.count > 0 {
		rl.count--
	}
}

// Wait blocks until the call fits the limit or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return nil
	}
	d := rl.reserve()
	if d <= 0 {
		return nil
	}

	slog.Debug("rate limit reached, waiting", "limit", rl.limit, "wait", d)
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		rl.release()
		return ctx.Err()
	}
}
