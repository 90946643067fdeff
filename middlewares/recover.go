package middlewares

import (
	"runtime"

	"github.com/lgzarturo/bootzen/internal"
)

// RecoverOption configures the Recover middleware.
type RecoverOption func(*recoverConfig)

type recoverConfig struct {
	stackSize int
	noStack   bool
}

// WithRecoverStackSize caps the captured stack trace in bytes.
// Defaults to 4 KiB.
func WithRecoverStackSize(size int) RecoverOption {
	return func(c *recoverConfig) {
		if size > 0 {
			c.stackSize = size
		}
	}
}

// WithRecoverDisablePrintStack suppresses stack capture. The panic value is
// still logged and converted to a PanicError.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(c *recoverConfig) {
		c.noStack = true
	}
}

// Recover converts handler panics into a PanicError carrying the panic value
// and (unless disabled) the goroutine's stack, logging both. The error then
// flows to the application's error handler like any other handler error.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := recoverConfig{stackSize: 4 << 10}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				pe := &PanicError{Value: r}
				if cfg.noStack {
					c.LogError("panic recovered", "panic", r)
				} else {
					buf := make([]byte, cfg.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
					c.LogError("panic recovered", "panic", r, "stack", string(pe.Stack))
				}
				err = pe
			}()

			return next(c)
		}
	}
}
