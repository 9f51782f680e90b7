// Package ratelimit caps how many generative-text requests a single run may
// spend. The article generator burns real API quota per draft, so the
// budget is enforced here rather than trusted to callers.
package ratelimit

import (
	"sync"
	"time"

	"github.com/jamsa/articlegen/internal/logger"
)

// Limiter is a simple counting budget with a daily reset.
type Limiter struct {
	mu        sync.Mutex
	used      int
	max       int // 0 = unlimited
	resetTime time.Time
}

func New(max int) *Limiter {
	return &Limiter{
		max:       max,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// Allow reports whether another request fits in the budget.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()

	if l.max > 0 && l.used >= l.max {
		logger.Warn("generation budget exhausted", "used", l.used, "max", l.max)
		return false
	}
	return true
}

// Record counts one spent request.
func (l *Limiter) Record() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()
	l.used++
}

// Stats returns the current usage.
func (l *Limiter) Stats() (used, max int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used, l.max
}

func (l *Limiter) checkReset() {
	if time.Now().After(l.resetTime) {
		l.used = 0
		l.resetTime = time.Now().Add(24 * time.Hour)
	}
}
