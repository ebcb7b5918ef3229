package ratelimit

import (
	"context"
	"sync"
	"time"
)

// bucket tracks the remaining allowance for one client.
type bucket struct {
	tokens float64
	seen   time.Time
}

// MemoryLimiter is a per-client token bucket tuned for submission
// traffic: a filmmaker sends a handful of uploads in quick succession
// and then goes quiet. Buckets refill at a sustained per-second rate,
// and idle clients are swept inline during Allow calls, so the limiter
// needs no background goroutine.
type MemoryLimiter struct {
	rate    float64 // tokens added per second
	burst   float64 // bucket capacity
	maxIdle time.Duration

	now func() time.Time // swappable for tests

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

const (
	defaultMaxIdle = 10 * time.Minute
	sweepInterval  = time.Minute
)

// NewMemoryLimiter creates a limiter that allows rate sustained
// requests per second per client, with the given burst capacity.
func NewMemoryLimiter(rate float64, burst int) *MemoryLimiter {
	return &MemoryLimiter{
		rate:    rate,
		burst:   float64(burst),
		maxIdle: defaultMaxIdle,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow consumes one token for key and reports whether the request may
// proceed. At most once per sweep interval it also drops buckets that
// have been idle longer than maxIdle, keeping memory bounded.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweep(now)
	}

	b, ok := m.buckets[key]
	if !ok {
		// First request: full bucket minus the token just spent.
		m.buckets[key] = &bucket{tokens: m.burst - 1, seen: now}
		return true, nil
	}

	b.tokens = min(m.burst, b.tokens+now.Sub(b.seen).Seconds()*m.rate)
	b.seen = now
	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// sweep drops buckets idle longer than maxIdle. Callers hold mu.
func (m *MemoryLimiter) sweep(now time.Time) {
	m.lastSweep = now
	cutoff := now.Add(-m.maxIdle)
	for key, b := range m.buckets {
		if b.seen.Before(cutoff) {
			delete(m.buckets, key)
		}
	}
}

// Close releases all buckets. Safe to call multiple times.
func (m *MemoryLimiter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets = make(map[string]*bucket)
	return nil
}
