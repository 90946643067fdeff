package internal

import (
	"log/slog"

	"github.com/lgzarturo/bootzen/pkg/cookie"
	"github.com/lgzarturo/bootzen/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware appends global middleware, outermost first. It accepts the
// same shapes as route middleware: Middleware, Processor, or the name of a
// container binding resolved at dispatch time.
func WithMiddleware(mw ...any) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers route-declaring handlers; each Routes method runs
// once during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithRoutes registers routes with a plain function instead of a Handler.
//
// Example:
//
//	bootzen.WithRoutes(func(r *bootzen.Router) {
//	    r.GET("/ping", func(c bootzen.Context) error {
//	        return c.String(http.StatusOK, "pong")
//	    })
//	})
func WithRoutes(fn func(r *Router)) Option {
	return WithHandlers(routesFunc(fn))
}

type routesFunc func(r *Router)

func (f routesFunc) Routes(r *Router) { f(r) }

// WithServices registers bindings on the app's container during setup.
//
// Example:
//
//	bootzen.WithServices(func(c *bootzen.Container) {
//	    c.Singleton("accounts", func(c *bootzen.Container) (any, error) {
//	        return NewAccountService(), nil
//	    })
//	})
func WithServices(fn func(c *Container)) Option {
	return func(a *App) {
		fn(a.container)
	}
}

// WithErrorHandler replaces the default rendering of handler errors. The
// handler receives every non-nil error the chain returns, including the
// typed panic and timeout errors from the middlewares package.
//
//	bootzen.WithErrorHandler(func(c bootzen.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler replaces the plain-text 404 response written when no
// route matches. Unmatched requests never reach the error handler; this is
// the only hook for them.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.router.SetNotFound(h)
	}
}

// WithHealthChecks mounts the liveness and readiness endpoints, by default
// at /health/live and /health/ready. Liveness succeeds whenever the process
// answers; readiness runs the configured checks.
//
//	bootzen.WithHealthChecks(
//	    bootzen.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger builds the app logger. Every entry carries the component name,
// and the extractors lift request-scoped values (a request ID, say) onto each
// line logged under a request.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger installs an externally built slog.Logger, bypassing the
// WithLogger factory entirely. Nil loggers are ignored.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions rebuilds the cookie manager with the given policy.
// Setting a secret here is what enables the signed-cookie methods on Context.
//
//	bootzen.WithCookieOptions(
//	    cookie.WithSecret(os.Getenv("COOKIE_SECRET")),
//	    cookie.WithSecure(true),
//	)
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookies = cookie.New(opts...)
	}
}
