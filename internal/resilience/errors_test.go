package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransientTypedError(t *testing.T) {
	err := NewTransientError(errors.New("too many requests"), 429)
	assert.True(t, IsTransient(err))
	assert.False(t, IsFatal(err))
}

func TestIsTransientWrapped(t *testing.T) {
	err := fmt.Errorf("invoke: %w", NewTransientError(errors.New("overloaded"), 529))
	assert.True(t, IsTransient(err))
}

func TestFatalNeverTransient(t *testing.T) {
	err := NewFatalError(errors.New("authentication_error"))
	assert.True(t, IsFatal(err))
	assert.False(t, IsTransient(err))
}

func TestFatalWrappedStillFatal(t *testing.T) {
	err := fmt.Errorf("stage: %w", NewFatalError(errors.New("forbidden")))
	assert.True(t, IsFatal(err))
	assert.False(t, IsTransient(err))
}

func TestCancellationNotTransient(t *testing.T) {
	assert.False(t, IsTransient(context.Canceled))
}

func TestDeadlineExceededIsTransient(t *testing.T) {
	// Per-request timeouts are retryable; the retry loop separately stops
	// when the parent context itself is done.
	assert.True(t, IsTransient(context.DeadlineExceeded))
}

func TestIsTransientStringHeuristics(t *testing.T) {
	assert.True(t, IsTransient(errors.New("connection reset by peer")))
	assert.True(t, IsTransient(errors.New("api overloaded, try again")))
	assert.False(t, IsTransient(errors.New("no such file")))
	assert.False(t, IsTransient(nil))
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), "status %d", code)
	}
	for _, code := range []int{200, 400, 401, 403, 404} {
		assert.False(t, IsTransientHTTPStatus(code), "status %d", code)
	}
}
