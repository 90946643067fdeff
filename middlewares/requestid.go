package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lgzarturo/bootzen/internal"
	"github.com/lgzarturo/bootzen/pkg/logger"
)

type requestIDKey struct{}

// RequestIDOption configures the RequestID middleware.
type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	lookup   []string
	respond  string
	generate func() string
}

// WithRequestIDHeaders sets which request headers are checked, in order, for
// an ID assigned upstream. Defaults to X-Request-ID, X-Request-Id and
// X-Correlation-ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) { cfg.lookup = headers }
}

// WithRequestIDGenerator replaces the UUID generator used when no incoming
// header carries an ID.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) { cfg.generate = gen }
}

// WithRequestIDResponseHeader renames the response header the ID is echoed
// on. Defaults to X-Request-ID.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *requestIDConfig) { cfg.respond = header }
}

// RequestID tags every request with an ID, reusing one sent by an upstream
// proxy when present. The ID lands in the request context and on the
// response, so clients and logs can be correlated.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := requestIDConfig{
		lookup:   []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID"},
		respond:  "X-Request-ID",
		generate: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := ""
			for _, h := range cfg.lookup {
				if id = c.Header(h); id != "" {
					break
				}
			}
			if id == "" {
				id = cfg.generate()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(cfg.respond, id)

			return next(c)
		}
	}
}

// GetRequestID returns the ID assigned by RequestID, or "" when the
// middleware did not run.
func GetRequestID(c internal.Context) string {
	id, _ := c.Get(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adapts the stored request ID into a logger extractor, so
// every log line emitted under the request carries a request_id attribute.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
