package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeClock drives the limiter deterministically.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(d)
}

func newTestLimiter(rate float64, burst int) (*MemoryLimiter, *fakeClock) {
	m := NewMemoryLimiter(rate, burst)
	clock := newFakeClock()
	m.now = clock.Now
	return m, clock
}

func TestMemoryLimiterAllowUnderBurst(t *testing.T) {
	m, _ := newTestLimiter(10, 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := m.Allow(ctx, "k1")
		if err != nil {
			t.Fatalf("Allow returned error on request %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("expected Allow=true for request %d (within burst)", i)
		}
	}
}

func TestMemoryLimiterDenyAfterBurst(t *testing.T) {
	m, _ := newTestLimiter(10, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok, _ := m.Allow(ctx, "k1"); !ok {
			t.Fatalf("expected Allow=true for request %d", i)
		}
	}
	if ok, _ := m.Allow(ctx, "k1"); ok {
		t.Fatal("expected Allow=false after burst exhausted")
	}
}

func TestMemoryLimiterTokenRefill(t *testing.T) {
	m, clock := newTestLimiter(1, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _ = m.Allow(ctx, "k1")
	}
	if ok, _ := m.Allow(ctx, "k1"); ok {
		t.Fatal("should be denied immediately after exhausting burst")
	}

	// Rate 1/s: one second restores exactly one token.
	clock.Advance(time.Second)
	if ok, _ := m.Allow(ctx, "k1"); !ok {
		t.Fatal("expected Allow=true after refill period")
	}
	if ok, _ := m.Allow(ctx, "k1"); ok {
		t.Fatal("only one token should have refilled")
	}
}

func TestMemoryLimiterTokensCapAtBurst(t *testing.T) {
	m, clock := newTestLimiter(1000, 3)
	ctx := context.Background()

	_, _ = m.Allow(ctx, "k1")
	clock.Advance(time.Hour)

	// A long idle period must not accumulate beyond the burst.
	for i := 0; i < 3; i++ {
		if ok, _ := m.Allow(ctx, "k1"); !ok {
			t.Fatalf("expected Allow=true for request %d after long idle", i)
		}
	}
	if ok, _ := m.Allow(ctx, "k1"); ok {
		t.Fatal("expected Allow=false once the refilled burst is spent")
	}
}

func TestMemoryLimiterIndependentKeys(t *testing.T) {
	m, _ := newTestLimiter(10, 1)
	ctx := context.Background()

	if ok, _ := m.Allow(ctx, "a"); !ok {
		t.Fatal("first request for 'a' should succeed")
	}
	if ok, _ := m.Allow(ctx, "a"); ok {
		t.Fatal("second request for 'a' should be denied")
	}
	if ok, _ := m.Allow(ctx, "b"); !ok {
		t.Fatal("first request for 'b' should succeed")
	}
}

func TestMemoryLimiterSweepDropsIdleClients(t *testing.T) {
	m, clock := newTestLimiter(10, 5)
	ctx := context.Background()

	_, _ = m.Allow(ctx, "stale")

	// Push past both the idle cutoff and the sweep interval; the next
	// Allow call runs the inline sweep.
	clock.Advance(defaultMaxIdle + 2*sweepInterval)
	_, _ = m.Allow(ctx, "fresh")

	m.mu.Lock()
	_, staleExists := m.buckets["stale"]
	_, freshExists := m.buckets["fresh"]
	m.mu.Unlock()

	if staleExists {
		t.Fatal("expected stale bucket to be swept")
	}
	if !freshExists {
		t.Fatal("expected fresh bucket to survive the sweep")
	}
}

func TestMemoryLimiterSweepKeepsRecent(t *testing.T) {
	m, clock := newTestLimiter(10, 5)
	ctx := context.Background()

	_, _ = m.Allow(ctx, "recent")
	clock.Advance(2 * sweepInterval)
	_, _ = m.Allow(ctx, "other")

	m.mu.Lock()
	_, exists := m.buckets["recent"]
	m.mu.Unlock()
	if !exists {
		t.Fatal("expected recently-seen bucket to survive the sweep")
	}
}

func TestMemoryLimiterConcurrent(t *testing.T) {
	m := NewMemoryLimiter(100, 50)
	defer m.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	allowed := make([]int, 10)

	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				ok, err := m.Allow(ctx, "shared")
				if err != nil {
					t.Errorf("goroutine %d: Allow error: %v", idx, err)
					return
				}
				if ok {
					allowed[idx]++
				}
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, c := range allowed {
		total += c
	}
	if total < 1 || total > 50 {
		t.Fatalf("expected between 1 and 50 allowed requests, got %d", total)
	}
}

func TestMemoryLimiterCloseResetsState(t *testing.T) {
	m, _ := newTestLimiter(10, 1)
	ctx := context.Background()

	_, _ = m.Allow(ctx, "k1")
	if ok, _ := m.Allow(ctx, "k1"); ok {
		t.Fatal("burst of 1 should be exhausted")
	}

	if err := m.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}

	// Buckets are discarded on Close, so the key starts fresh.
	if ok, _ := m.Allow(ctx, "k1"); !ok {
		t.Fatal("expected a fresh bucket after Close")
	}
}

func TestNoopLimiterAlwaysAllows(t *testing.T) {
	var l NoopLimiter
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		ok, err := l.Allow(ctx, "anything")
		if err != nil {
			t.Fatalf("NoopLimiter.Allow error: %v", err)
		}
		if !ok {
			t.Fatal("NoopLimiter should always return true")
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("NoopLimiter.Close error: %v", err)
	}
}
