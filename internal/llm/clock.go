package llm

import (
	"context"
	"time"
)

// Clock abstracts wall time and sleeping so throttle behavior can be
// simulated deterministically in tests.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

// realClock is the production Clock backed by the time package.
type realClock struct{}

// RealClock returns a Clock backed by real wall time.
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
