package middlewares

import (
	"time"

	"github.com/lgzarturo/bootzen/internal"
)

// LoggerConfig configures the request logging middleware.
type LoggerConfig struct {
	// SkipPaths lists exact request paths that are not logged (e.g. health probes).
	SkipPaths []string
}

// LoggerOption configures LoggerConfig.
type LoggerOption func(*LoggerConfig)

// WithLoggerSkipPaths sets paths excluded from request logging.
func WithLoggerSkipPaths(paths ...string) LoggerOption {
	return func(cfg *LoggerConfig) {
		cfg.SkipPaths = paths
	}
}

// Logger returns middleware that logs one line per request with method, path,
// status, response size, and duration. Handler errors are logged and passed
// through unchanged so the error handler still runs.
func Logger(opts ...LoggerOption) internal.Middleware {
	cfg := &LoggerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if skip[c.Path()] {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			attrs := []any{
				"method", c.Method(),
				"path", c.Path(),
				"duration", duration.String(),
			}
			if rw := c.ResponseWriter(); rw != nil {
				attrs = append(attrs, "status", rw.Status(), "size", rw.Size())
			}

			if err != nil {
				attrs = append(attrs, "error", err)
				c.LogError("request failed", attrs...)
				return err
			}

			c.LogInfo("request completed", attrs...)
			return nil
		}
	}
}
