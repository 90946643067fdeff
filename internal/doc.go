// Package internal provides the core types and implementation for the Bootzen framework.
//
// This package is internal and should not be used directly. Import
// "github.com/lgzarturo/bootzen" instead, which re-exports the public API.
//
// # Core Types
//
// The package defines the fundamental types that users interact with:
//
//   - App: Orchestrates the application lifecycle, routing, and graceful shutdown
//   - Container: Name-keyed dependency registry with factories, singletons, and aliases
//   - Router: Matches requests against regex-compiled route patterns in registration order
//   - Route: A single registered route carrying its compiled pattern and middleware
//   - Context: Provides request/response access and helper methods
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - ActionFunc: Handler shape returning a value that is coerced into a response
//   - Middleware: Wraps handlers to add cross-cutting concerns like auth or logging
//   - ErrorHandler: Custom error handling function for handler errors
//
// # Routing
//
// Route patterns are plain paths with {name} placeholders, compiled to anchored
// regular expressions where each placeholder matches one path segment. Routes
// are scanned in registration order and the first match wins; there is no
// specificity ranking, so register specific routes before catch-alls:
//
//	r.GET("/items/new", showForm)
//	r.GET("/items/{id}", showItem)
//
// # Container
//
// Services are registered under string identifiers and resolved lazily.
// Factories receive the container, so nested dependencies are resolved with
// explicit Make calls rather than constructor reflection:
//
//	c.Singleton("cache", func(c *internal.Container) (any, error) {
//	    client, err := c.Make("redis")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return cache.NewRedis[string](client.(redis.UniversalClient), nil), nil
//	})
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context. The Deadline, Done, Err, and Value
// methods delegate to the underlying request context.
//
// # Handler Pattern
//
// Handlers implement the Handler interface and declare routes:
//
//	type AccountHandler struct {
//	    accounts *AccountService
//	}
//
//	func (h *AccountHandler) Routes(r *internal.Router) {
//	    r.GET("/accounts", h.list)
//	    r.POST("/accounts", h.create)
//	}
//
// Routes also accept "Service@Method" strings and ControllerRef values that
// resolve their receiver out of the container at dispatch time.
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting concerns:
//
//	func LoggingMiddleware(next internal.HandlerFunc) internal.HandlerFunc {
//	    return func(c internal.Context) error {
//	        start := time.Now()
//	        err := next(c)
//	        c.LogInfo("request processed", "duration", time.Since(start))
//	        return err
//	    }
//	}
//
// Middleware runs in registration order on the way in and in reverse on the
// way out. It can short-circuit by not calling next, or wrap the response by
// acting after next returns.
//
// # Error Handling
//
// Errors returned from handlers trigger the ErrorHandler. The default handler
// renders HTTPError values with their status code and everything else as a
// logged 500. A request that matches no route is not an error: the not-found
// handler answers it with a 404 response.
//
// See the bootzen package documentation for the public API and usage examples.
package internal
