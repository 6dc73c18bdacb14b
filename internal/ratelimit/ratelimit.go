// Package ratelimit throttles outbound model calls on the client side.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"doc-summarizer/internal/config"
)

// Limiter is a token bucket refilled at a fixed rate. The bucket starts full.
type Limiter struct {
	bucket     *rate.Limiter
	checkEvery time.Duration
}

// New builds a limiter from rate settings. A positive CheckInterval makes
// Wait poll the bucket at that interval instead of sleeping until the next
// token is due.
func New(cfg config.RateConfig) *Limiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Limiter{
		bucket:     rate.NewLimiter(limit, burst),
		checkEvery: cfg.CheckInterval,
	}
}

// Unlimited never blocks.
func Unlimited() *Limiter {
	return &Limiter{bucket: rate.NewLimiter(rate.Inf, 1)}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.checkEvery <= 0 {
		return l.bucket.Wait(ctx)
	}
	ticker := time.NewTicker(l.checkEvery)
	defer ticker.Stop()
	for {
		if l.bucket.Allow() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tokens reports the tokens currently in the bucket.
func (l *Limiter) Tokens() float64 {
	return l.bucket.Tokens()
}
