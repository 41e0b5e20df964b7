package price

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ErrRateLimitExhausted is returned when a token could not be obtained
// within the bounded wait. Callers must not retry within the same cycle.
var ErrRateLimitExhausted = errors.New("price rate limit exhausted")

// Gate is the token bucket in front of one price source. Every concurrent
// enrichment call to that source draws from its bucket, since the upstream
// quota is account-wide rather than per-symbol.
type Gate struct {
	limiter *rate.Limiter
	maxWait time.Duration
}

// NewGate creates a bucket holding burst tokens that refills one token per
// interval/burst. Waiters block at most maxWait before giving up.
func NewGate(burst int, interval, maxWait time.Duration) *Gate {
	every := interval / time.Duration(burst)
	return &Gate{
		limiter: rate.NewLimiter(rate.Every(every), burst),
		maxWait: maxWait,
	}
}

// Acquire takes one token, waiting up to the bounded maximum. It returns
// ErrRateLimitExhausted when the wait budget runs out, or the parent
// context's error when that is cancelled first.
func (g *Gate) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, g.maxWait)
	defer cancel()

	if err := g.limiter.Wait(waitCtx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrRateLimitExhausted
	}
	return nil
}
