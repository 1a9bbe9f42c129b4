package llm

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Throttle enforces a minimum interval between calls plus an optional
// fixed delay after the interval check. This is a best-effort client-side
// throttle keyed off the last call timestamp, not a token bucket, so it
// does not guarantee an exact QPS under clock skew or external callers
// sharing the same credential.
//
// The last-call timestamp is mutable state: one Throttle belongs to one
// batch. Concurrent batches need independent throttles (or external
// serialization) against the same credential.
type Throttle struct {
	mu          sync.Mutex
	clock       Clock
	minInterval time.Duration
	postDelay   time.Duration
	last        time.Time
}

// NewThrottle creates a throttle with the given minimum interval between
// calls and a fixed post-interval delay. A nil clock uses real time.
func NewThrottle(minInterval, postDelay time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = RealClock()
	}
	return &Throttle{
		clock:       clock,
		minInterval: minInterval,
		postDelay:   postDelay,
	}
}

// Wait blocks until the minimum interval since the previous call has
// elapsed, then applies the fixed post delay. Returns early on context
// cancellation.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.last.IsZero() {
		elapsed := t.clock.Now().Sub(t.last)
		if wait := t.minInterval - elapsed; wait > 0 {
			zap.L().Debug("throttle: sleeping before model call",
				zap.Duration("wait", wait),
			)
			t.clock.Sleep(ctx, wait)
		}
	}
	if t.postDelay > 0 {
		t.clock.Sleep(ctx, t.postDelay)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.last = t.clock.Now()
	return nil
}
