// Package testutil provides shared test helpers for async assertions.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Common test timeout constants.
const (
	// DefaultTestTimeout is the standard timeout for most async test operations.
	DefaultTestTimeout = 5 * time.Second

	// ShortTestTimeout is for operations expected to complete quickly.
	ShortTestTimeout = 1 * time.Second
)

// WaitForChannel waits for a signal on the channel or fails after timeout.
// Use this for done channels and completion signals.
func WaitForChannel(t *testing.T, ch <-chan struct{}, timeout time.Duration, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		require.Fail(t, msg)
	}
}

// ReceiveWithin returns the next value from ch, failing the test if nothing
// arrives within timeout or the channel is closed first.
func ReceiveWithin[T any](t *testing.T, ch <-chan T, timeout time.Duration) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed before a value was delivered")
		return v
	case <-time.After(timeout):
		require.FailNow(t, "timed out waiting for channel value")
	}
	var zero T
	return zero
}

// AssertNoValue fails if ch delivers a value within wait.
func AssertNoValue[T any](t *testing.T, ch <-chan T, wait time.Duration) {
	t.Helper()
	select {
	case v, ok := <-ch:
		if ok {
			require.Failf(t, "unexpected channel value", "%v", v)
		}
	case <-time.After(wait):
	}
}
