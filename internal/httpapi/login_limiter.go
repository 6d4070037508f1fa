package httpapi

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// An idle bucket refills completely within a minute, so dropping it after
// limiterIdleTTL forgets nothing.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// loginLimiter throttles login and registration attempts per key with a
// token bucket refilled at perMinute tokens per minute. Buckets unused for
// limiterIdleTTL are swept on a later Allow.
type loginLimiter struct {
	mu        sync.Mutex
	perMinute int
	limiters  map[string]*limiterEntry
	lastSweep time.Time
}

func newLoginLimiter(perMinute int) *loginLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &loginLimiter{
		perMinute: perMinute,
		limiters:  make(map[string]*limiterEntry),
	}
}

func (l *loginLimiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		l.sweep(now)
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{
			lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute),
		}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1)
}

func (l *loginLimiter) sweep(now time.Time) {
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) >= limiterIdleTTL {
			delete(l.limiters, k)
		}
	}
	l.lastSweep = now
}
