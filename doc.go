// Package bootzen provides a small, opinionated micro-framework for building
// HTTP services in Go around a service container.
//
// Bootzen is designed around the principle of "no magic": routes are plain
// regex patterns matched in registration order, services are resolved from an
// explicit container, and handlers are plain Go functions. The framework
// provides a thin orchestration layer while keeping business logic in your
// own packages.
//
// # Quick Start
//
// Create a new application with bootzen.New(), configure it with options,
// and call Run() to start the HTTP server:
//
//	app := bootzen.New(
//	    bootzen.WithLogger("api"),
//	    bootzen.WithHandlers(
//	        handlers.NewAccounts(repo),
//	        handlers.NewPages(repo),
//	    ),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routing
//
// Routes use {name} placeholders that match a single path segment. Routes
// are matched in the order they were registered, so register specific
// patterns before catch-alls:
//
//	func (h *ItemsHandler) Routes(r *bootzen.Router) {
//	    r.GET("/items/new", h.newForm)
//	    r.GET("/items/{id}", h.show)
//	    r.POST("/items", h.create)
//	}
//
//	func (h *ItemsHandler) show(c bootzen.Context) error {
//	    return c.JSON(200, h.repo.Find(c.Param("id")))
//	}
//
// # Services
//
// The container holds named services. Handlers can reference a service and
// method instead of a function, and the pair is resolved per request:
//
//	app := bootzen.New(
//	    bootzen.WithServices(func(c *bootzen.Container) {
//	        c.Singleton("users", func(c *bootzen.Container) (any, error) {
//	            return NewUserController(repo), nil
//	        })
//	    }),
//	    bootzen.WithRoutes(func(r *bootzen.Router) {
//	        r.GET("/users/{id}", "users@Show")
//	    }),
//	)
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting concerns:
//
//	func Auth(tokens *TokenStore) bootzen.Middleware {
//	    return func(next bootzen.HandlerFunc) bootzen.HandlerFunc {
//	        return func(c bootzen.Context) error {
//	            if !tokens.Valid(c.Header("Authorization")) {
//	                return bootzen.ErrUnauthorized("invalid token")
//	            }
//	            return next(c)
//	        }
//	    }
//	}
//
// # Shutdown
//
// The application handles SIGINT/SIGTERM for graceful shutdown.
// Register cleanup functions with ShutdownHook:
//
//	err := app.Run(":8080",
//	    bootzen.ShutdownHook(redis.Shutdown(client)),
//	)
package bootzen
