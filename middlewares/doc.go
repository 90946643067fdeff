// Package middlewares ships the framework's stock middleware.
//
// Everything here has the internal.Middleware shape, so the pieces compose
// with app-level, group-level, and per-route middleware alike.
//
// # Request ID
//
// RequestID tags every request with an ID for correlation, reusing one sent
// by an upstream proxy when present:
//
//	app := bootzen.New(
//	    bootzen.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// Pair it with RequestIDExtractor so the ID rides along on every log line:
//
//	app := bootzen.New(
//	    bootzen.WithLogger("api", middlewares.RequestIDExtractor()),
//	    bootzen.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Recover
//
// Recover turns handler panics into a *PanicError carrying the panic value
// and stack, which then flows through normal error handling:
//
//	bootzen.WithErrorHandler(func(c bootzen.Context, err error) error {
//	    if pe, ok := middlewares.AsPanicError(err); ok {
//	        c.LogError("panic", "value", pe.Value, "stack", string(pe.Stack))
//	        return c.Error(500, "Internal Server Error")
//	    }
//	    return c.Error(500, err.Error())
//	})
//
// # Timeout
//
// Timeout bounds how long a request may run and yields a *TimeoutError when
// the budget is spent. The abandoned handler keeps running; it should watch
// GetTimeoutContext(c).Done() to stop early:
//
//	bootzen.WithMiddleware(
//	    middlewares.Timeout(5*time.Second),
//	)
//
// Map it to 504 in the error handler with IsTimeoutError.
//
// # CORS
//
// CORS answers cross-origin requests and preflights. Registered in the
// container under bootzen.CORSBinding, it also covers the router's automatic
// OPTIONS responses:
//
//	app := bootzen.New(
//	    bootzen.WithServices(func(c *bootzen.Container) {
//	        c.Instance(bootzen.CORSBinding, middlewares.CORS(
//	            middlewares.WithAllowOrigins("https://app.example.com"),
//	            middlewares.WithAllowCredentials(),
//	        ))
//	    }),
//	)
//
// Or apply it globally like any other middleware; the zero-option form allows
// every origin.
//
// # JWT
//
// JWT validates bearer tokens and stores the parsed claims on the request
// context. Token lookup is configurable through extractors:
//
//	bootzen.WithMiddleware(
//	    middlewares.JWT(secret,
//	        middlewares.WithJWTExtractors(
//	            middlewares.FromBearerToken(),
//	            middlewares.FromCookie("auth"),
//	        ),
//	    ),
//	)
//
// # Logger
//
// Logger emits one structured line per request with the method, path, status,
// response size, and duration.
//
// # Ordering
//
// A sensible global stack, outermost first: CORS (answer preflights before
// anything else), RequestID (so the rest logs with an ID), Logger, Timeout,
// then Recover innermost, where it catches a panicking handler on the same
// goroutine Timeout runs it on.
package middlewares
