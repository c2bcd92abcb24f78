package postindex

import (
	"testing"
	"time"
)

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewLoginLimiter(3, time.Minute)
	ip := "203.0.113.10"

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ip) {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if limiter.Allow(ip) {
		t.Fatal("attempt over the limit should be blocked")
	}
}

func TestLoginLimiterAllowsAfterWindow(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Minute)
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatal("first attempt should be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatal("second attempt should be blocked")
	}

	// Age the recorded attempt past the window instead of sleeping.
	limiter.mu.Lock()
	for i := range limiter.attempts[ip] {
		limiter.attempts[ip][i] = limiter.attempts[ip][i].Add(-2 * time.Minute)
	}
	limiter.mu.Unlock()

	if !limiter.Allow(ip) {
		t.Fatal("attempt after the window should be allowed")
	}
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Minute)

	if !limiter.Allow("203.0.113.30") {
		t.Fatal("first ip should be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatal("second ip should be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatal("first ip should be blocked after max")
	}
}

func TestLoginLimiterPruneDropsOnlyStale(t *testing.T) {
	limiter := NewLoginLimiter(5, time.Minute)
	ip := "203.0.113.40"
	now := time.Now()

	limiter.mu.Lock()
	limiter.attempts[ip] = []time.Time{
		now.Add(-3 * time.Minute),
		now.Add(-90 * time.Second),
		now.Add(-10 * time.Second),
		now.Add(-time.Second),
	}
	kept := limiter.prune(ip, now)
	stored := len(limiter.attempts[ip])
	limiter.mu.Unlock()

	if len(kept) != 2 {
		t.Fatalf("prune kept %d attempts, want 2", len(kept))
	}
	if stored != 2 {
		t.Fatalf("prune stored %d attempts, want 2", stored)
	}
	for _, ts := range kept {
		if !ts.After(now.Add(-time.Minute)) {
			t.Errorf("stale attempt %v survived prune", ts)
		}
	}
}
