package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces out repeated work to at most one run per interval.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter allows burst immediate events, then one per interval. A
// non-positive interval never limits.
func NewLimiter(interval time.Duration, burst int) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{inner: rate.NewLimiter(limit, burst)}
}

// Wait blocks until an event may happen or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.inner.Wait(ctx)
}
