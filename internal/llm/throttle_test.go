package llm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances instantly on Sleep so throttle behavior can be
// asserted as simulated elapsed time.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestThrottleEnforcesMinInterval(t *testing.T) {
	clock := newFakeClock()
	th := NewThrottle(2*time.Second, 0, clock)
	start := clock.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, th.Wait(context.Background()))
	}

	// Three calls with a 2s floor between them: at least 4s must pass.
	assert.GreaterOrEqual(t, clock.Now().Sub(start), 4*time.Second)
}

func TestThrottleFirstCallImmediate(t *testing.T) {
	clock := newFakeClock()
	th := NewThrottle(5*time.Second, 0, clock)
	start := clock.Now()

	require.NoError(t, th.Wait(context.Background()))
	assert.Equal(t, time.Duration(0), clock.Now().Sub(start))
}

func TestThrottleAppliesPostDelay(t *testing.T) {
	clock := newFakeClock()
	th := NewThrottle(0, 2*time.Second, clock)
	start := clock.Now()

	require.NoError(t, th.Wait(context.Background()))
	require.NoError(t, th.Wait(context.Background()))
	assert.Equal(t, 4*time.Second, clock.Now().Sub(start))
}

func TestThrottleSkipsWaitWhenIntervalElapsed(t *testing.T) {
	clock := newFakeClock()
	th := NewThrottle(2*time.Second, 0, clock)

	require.NoError(t, th.Wait(context.Background()))
	clock.Sleep(context.Background(), 10*time.Second)
	start := clock.Now()

	require.NoError(t, th.Wait(context.Background()))
	assert.Equal(t, time.Duration(0), clock.Now().Sub(start))
}

func TestThrottleReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	th := NewThrottle(time.Second, 0, newFakeClock())
	assert.Error(t, th.Wait(ctx))
}
