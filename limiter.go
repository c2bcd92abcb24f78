package postindex

import (
	"sync"
	"time"
)

// LoginLimiter rate-limits admin login attempts per IP address using a
// sliding window.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
}

// NewLoginLimiter creates a LoginLimiter that allows max attempts per window.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
	}
	go l.cleanup()
	return l
}

// prune drops attempts older than the window for ip and returns what
// remains. Caller must hold l.mu.
func (l *LoginLimiter) prune(ip string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	kept := l.attempts[ip][:0]
	for _, t := range l.attempts[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.attempts[ip] = kept
	return kept
}

func (l *LoginLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	for now := range ticker.C {
		l.mu.Lock()
		for ip := range l.attempts {
			if len(l.prune(ip, now)) == 0 {
				delete(l.attempts, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Allow checks if the IP has not exceeded the rate limit and records the attempt.
func (l *LoginLimiter) Allow(ip string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.prune(ip, now)
	if len(kept) >= l.max {
		return false
	}
	l.attempts[ip] = append(kept, now)
	return true
}
