package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/lgzarturo/bootzen/internal"
)

type timeoutContextKey struct{}

// GetTimeoutContext returns the deadline-bound context installed by Timeout,
// or the request context when the middleware is not in the chain. Handlers
// doing slow work should pass this to downstream calls so they stop when the
// budget runs out.
func GetTimeoutContext(c internal.Context) context.Context {
	if ctx, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// Timeout runs the rest of the chain in a goroutine and abandons it once d
// elapses, answering with a TimeoutError instead. Zero or negative d falls
// back to 30 seconds.
//
// Abandoned handlers keep running until they observe the deadline via
// GetTimeoutContext. Writes they make after the timeout fires race with the
// error response, so long handlers must check the context before writing.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = 30 * time.Second
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timed out", "after", d.String())
					return &TimeoutError{Duration: d}
				}
				return ctx.Err()
			}
		}
	}
}
