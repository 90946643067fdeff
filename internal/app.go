package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lgzarturo/bootzen/pkg/cookie"
	"github.com/lgzarturo/bootzen/pkg/health"
	"github.com/lgzarturo/bootzen/pkg/logger"
)

// Server timeouts are fixed; only the shutdown budget is configurable.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle: the service container, the
// router, global middleware, error handling, and graceful shutdown.
// App is immutable after creation, all configuration is done via New().
type App struct {
	container    *Container
	router       *Router
	chain        HandlerFunc
	errorHandler ErrorHandler
	healthConfig *healthConfig
	logger       *slog.Logger
	cookies      *cookie.Manager
	middlewares  []any
	handlers     []Handler
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := bootzen.New(
//	    bootzen.WithMiddleware(middlewares.Logger(log)),
//	    bootzen.WithHandlers(
//	        handlers.NewAccounts(repo),
//	        handlers.NewPages(repo),
//	    ),
//	)
func New(opts ...Option) *App {
	a := &App{
		container: NewContainer(),
		logger:    logger.NewNope(),
		cookies:   cookie.New(),
	}
	a.router = NewRouter(a.container)

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Container returns the app's service container.
func (a *App) Container() *Container {
	return a.container
}

// Router returns the app's router for registering routes after New.
func (a *App) Router() *Router {
	return a.router
}

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app := bootzen.New(
//	    bootzen.WithHandlers(handlers.NewLanding()),
//	)
//	err := app.Run(":8080", bootzen.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes registers built-in endpoints and declared handlers, then folds
// the global middleware around the router dispatch once so ServeHTTP does no
// per-request chain building for the global stack.
func (a *App) setupRoutes() {
	if a.healthConfig != nil {
		a.router.GET(a.healthConfig.livenessPath, WrapHTTPHandler(health.LivenessHandler()))
		a.router.GET(a.healthConfig.readinessPath, WrapHTTPHandler(health.ReadinessHandler(a.healthConfig.checks)))
	}

	for _, h := range a.handlers {
		h.Routes(a.router)
	}

	chain := a.router.Dispatch
	for i := len(a.middlewares) - 1; i >= 0; i-- {
		mw, err := asMiddleware(a.middlewares[i], a.container)
		if err != nil {
			panic(err)
		}
		chain = mw(chain)
	}
	a.chain = chain
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a.logger, a.cookies)
	if err := a.chain(c); err != nil {
		a.handleError(c, err)
	}
}

// handleError renders errors escaping the handler chain. An HTTPError keeps
// its status and message; anything else is logged and answered with a 500.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		_ = a.errorHandler(c, err)
		return
	}

	if httpErr := AsHTTPError(err); httpErr != nil {
		_ = c.JSON(httpErr.Code, map[string]string{"error": httpErr.Message})
		return
	}

	a.logger.ErrorContext(c.Context(), "unhandled error", "error", err)
	_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
}

// healthConfig carries the endpoint paths and checks until setupRoutes
// mounts them.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath moves the liveness endpoint from /health/live.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath moves the readiness endpoint from /health/ready.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck names a dependency the readiness endpoint verifies.
// Checks run concurrently on every probe.
//
//	bootzen.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
