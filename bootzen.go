package bootzen

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/lgzarturo/bootzen/internal"
	"github.com/lgzarturo/bootzen/pkg/cookie"
	"github.com/lgzarturo/bootzen/pkg/health"
	"github.com/lgzarturo/bootzen/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages the service container, routing, middleware, and graceful shutdown.
	App = internal.App

	// Container is the service container for dependency injection.
	Container = internal.Container

	// Factory builds a service instance using the container.
	Factory = internal.Factory

	// Router registers routes and dispatches requests.
	Router = internal.Router

	// Route is a single registered route.
	Route = internal.Route

	// GroupAttrs configures a route group.
	GroupAttrs = internal.GroupAttrs

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// ActionFunc is a handler returning a value that is coerced to a response.
	ActionFunc = internal.ActionFunc

	// ControllerRef addresses a handler as a container service and method name.
	ControllerRef = internal.ControllerRef

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// Processor is a struct-shaped middleware.
	Processor = internal.Processor

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// HTTPError is an error with an HTTP status code and user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// ResponseWriter wraps http.ResponseWriter with status and size tracking.
	ResponseWriter = internal.ResponseWriter

	// RouteParamsKey is the context key under which route parameters are stored.
	RouteParamsKey = internal.RouteParamsKey
)

// CORSBinding is the container key the router checks for a CORS middleware
// when answering OPTIONS requests.
const CORSBinding = internal.CORSBinding

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := bootzen.New(
//	    bootzen.WithMiddleware(middlewares.RequestID()),
//	    bootzen.WithHandlers(
//	        handlers.NewAccounts(repo),
//	        handlers.NewPages(repo),
//	    ),
//	)
//
//	err := app.Run(":8080", bootzen.Logger(slog))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewContainer creates a standalone service container.
// Apps created with New already carry one; use this for tests or
// non-HTTP programs that want container semantics.
func NewContainer() *Container {
	return internal.NewContainer()
}

// NewRouter creates a standalone router bound to the given container.
func NewRouter(c *Container) *Router {
	return internal.NewRouter(c)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided. Accepts Middleware values,
// Processor implementations, and container service names.
func WithMiddleware(mw ...any) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithRoutes registers routes with a plain function instead of a Handler type.
//
// Example:
//
//	bootzen.WithRoutes(func(r *bootzen.Router) {
//	    r.GET("/ping", func(c bootzen.Context) error {
//	        return c.String(200, "pong")
//	    })
//	})
func WithRoutes(fn func(r *Router)) Option {
	return internal.WithRoutes(fn)
}

// WithServices registers services in the app's container during setup.
//
// Example:
//
//	bootzen.WithServices(func(c *bootzen.Container) {
//	    c.Singleton("users", func(c *bootzen.Container) (any, error) {
//	        return NewUserService(), nil
//	    })
//	})
func WithServices(fn func(c *Container)) Option {
	return internal.WithServices(fn)
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	bootzen.WithHealthChecks(
//	    bootzen.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	bootzen.New(
//	    bootzen.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
//
// Example:
//
//	customLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	bootzen.New(
//	    bootzen.WithCustomLogger(customLogger),
//	)
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithCookieOptions configures the cookie manager.
//
// Example:
//
//	bootzen.New(
//	    bootzen.WithCookieOptions(
//	        bootzen.WithCookieSecret(os.Getenv("COOKIE_SECRET")),
//	        bootzen.WithCookieSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the application logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run during server startup.
// Hooks are called in the order they were registered, before the port is
// bound. If any hook fails, the server does not start and the error is
// returned.
//
// Example:
//
//	bootzen.StartupHook(warmCache)
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	bootzen.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Container helpers

// Provide registers a typed factory under the given name.
// When shared is true the result is cached after the first resolution.
func Provide[T any](c *Container, abstract string, factory func(c *Container) (T, error), shared bool) {
	internal.Provide[T](c, abstract, factory, shared)
}

// Resolve resolves a service and asserts it to type T.
//
// Example:
//
//	users, err := bootzen.Resolve[*UserService](app.Container(), "users")
func Resolve[T any](c *Container, abstract string) (T, error) {
	return internal.Resolve[T](c, abstract)
}

// MustResolve resolves a service and panics on failure.
// Use only during startup wiring where a missing service is fatal.
func MustResolve[T any](c *Container, abstract string) T {
	return internal.MustResolve[T](c, abstract)
}

// Context helpers

// WrapHTTPHandler adapts a plain http.Handler to a HandlerFunc.
func WrapHTTPHandler(h http.Handler) HandlerFunc {
	return internal.WrapHTTPHandler(h)
}

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := bootzen.ContextValue[string](c, tenantKey{})
//	user := bootzen.ContextValue[*User](c, userKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param retrieves a typed route parameter.
// Returns the zero value of T if missing or not convertible.
//
// Example:
//
//	id := bootzen.Param[int64](c, "id")
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query retrieves a typed query parameter.
// Returns the zero value of T if missing or not convertible.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault retrieves a typed query parameter with a fallback.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault[T](c, name, defaultValue)
}

// HTTP errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// HTTPError options.
func WithErrorCode(code string) HTTPErrorOption { return internal.WithErrorCode(code) }
func WithRequestID(id string) HTTPErrorOption   { return internal.WithRequestID(id) }
func WithError(err error) HTTPErrorOption       { return internal.WithError(err) }

// Common HTTP error constructors.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}

// IsHTTPError reports whether err is (or wraps) an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from an error chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Sentinel errors

// Container errors for checking return values.
var (
	ErrNotRegistered   = internal.ErrNotRegistered
	ErrInvalidConcrete = internal.ErrInvalidConcrete
	ErrCircularAlias   = internal.ErrCircularAlias
	ErrTypeMismatch    = internal.ErrTypeMismatch
)

// Router errors for checking return values.
var (
	ErrInvalidHandler    = internal.ErrInvalidHandler
	ErrInvalidMiddleware = internal.ErrInvalidMiddleware
	ErrInvalidMethod     = internal.ErrInvalidMethod
)

// Cookie options

// WithCookieSecret sets the secret for cookie signing.
// Must be at least 32 bytes.
func WithCookieSecret(secret string) CookieOption {
	return cookie.WithSecret(secret)
}

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return cookie.WithDomain(domain)
}

// WithCookiePath sets the cookie path.
func WithCookiePath(path string) CookieOption {
	return cookie.WithPath(path)
}

// WithCookieSecure sets the Secure flag.
func WithCookieSecure(secure bool) CookieOption {
	return cookie.WithSecure(secure)
}

// WithCookieHTTPOnly sets the HttpOnly flag.
func WithCookieHTTPOnly(httpOnly bool) CookieOption {
	return cookie.WithHTTPOnly(httpOnly)
}

// WithCookieSameSite sets the SameSite attribute.
func WithCookieSameSite(ss http.SameSite) CookieOption {
	return cookie.WithSameSite(ss)
}

// Cookie errors for checking return values.
var (
	ErrCookieNotFound  = cookie.ErrNotFound
	ErrCookieNoSecret  = cookie.ErrNoSecret
	ErrCookieBadSecret = cookie.ErrBadSecret
	ErrCookieBadSig    = cookie.ErrBadSig
)
