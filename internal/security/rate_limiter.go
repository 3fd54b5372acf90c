package security

import (
	"context"
	"sync"
	"time"
)

// RateLimiter implements a fixed-window token bucket per key
type RateLimiter struct {
	buckets map[string]*bucket
	mutex   sync.Mutex

	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// bucket holds the tokens left for one key in the current window
type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing maxRequests per window for each key
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:     make(map[string]*bucket),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Allow consumes a token for key and reports whether the request may proceed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.lastRefill) >= rl.window {
		b = &bucket{tokens: rl.maxRequests, lastRefill: now}
		rl.buckets[key] = b
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// RetryAfter is how long a rejected key waits for its next window
func (rl *RateLimiter) RetryAfter(key string) time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		return 0
	}
	wait := b.lastRefill.Add(rl.window).Sub(rl.now())
	if wait < 0 {
		return 0
	}
	return wait
}

// Sweep removes buckets whose window ended before the given age
func (rl *RateLimiter) Sweep(age time.Duration) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := rl.now().Add(-age)
	removed := 0
	for key, b := range rl.buckets {
		if b.lastRefill.Before(cutoff) {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle buckets every interval until ctx is done
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep(2 * rl.window)
		}
	}
}

// Stats returns rate limiting statistics
func (rl *RateLimiter) Stats() map[string]interface{} {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	return map[string]interface{}{
		"active_keys":    len(rl.buckets),
		"max_requests":   rl.maxRequests,
		"window_seconds": int(rl.window.Seconds()),
	}
}
