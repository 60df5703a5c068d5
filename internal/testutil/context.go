package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout returns a context canceled when the test ends or the timeout fires.
func ContextWithTimeout(t testing.TB, duration time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	t.Cleanup(cancel)

	return ctx
}
