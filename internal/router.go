package internal

import (
	"fmt"
	"net/http"
)

// CORSBinding is the container key the router consults when answering
// preflight requests. When bound, it must resolve to a middleware shape
// accepted by route registration; the router runs it around an empty 200.
const CORSBinding = "bootzen.cors"

// RouteParamsKey is the context key the router stores extracted path
// parameters under. Context.Param reads through it.
type RouteParamsKey struct{}

// GroupAttrs configures a route group: a path prefix prepended to every
// route registered inside it, and middleware attached to each of them.
type GroupAttrs struct {
	Prefix     string
	Middleware []any
}

// Router matches requests against routes in registration order.
//
// Patterns are plain paths with {name} placeholders. Each placeholder matches
// a single non-empty path segment. The first registered route whose pattern
// matches the request path wins; registration order is the only priority.
type Router struct {
	routes    map[string][]*Route
	groups    []GroupAttrs
	pending   []any
	container *Container
	notFound  HandlerFunc
}

var allowedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// NewRouter creates a router resolving controllers and middleware references
// through container.
func NewRouter(container *Container) *Router {
	return &Router{
		routes:    make(map[string][]*Route),
		container: container,
		notFound:  defaultNotFound,
	}
}

func defaultNotFound(c Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": "Not Found"})
}

// SetNotFound replaces the handler run when no route matches.
func (r *Router) SetNotFound(h HandlerFunc) {
	if h != nil {
		r.notFound = h
	}
}

// Handle registers a route. The handler may be a HandlerFunc, an ActionFunc,
// a "Service@Method" string, or a ControllerRef; anything else panics.
// Registration is the configuration phase, so shape errors fail fast instead
// of surfacing on the first matching request.
func (r *Router) Handle(method, pattern string, handler any, middleware ...any) *Route {
	if !allowedMethods[method] {
		panic(fmt.Errorf("%w: %q", ErrInvalidMethod, method))
	}

	h, err := asRouteHandler(handler)
	if err != nil {
		panic(err)
	}

	var prefix string
	var mw []any
	for _, g := range r.groups {
		prefix += g.Prefix
		mw = append(mw, g.Middleware...)
	}
	mw = append(mw, r.pending...)
	mw = append(mw, middleware...)
	r.pending = nil

	regex, names, err := compilePattern(prefix + pattern)
	if err != nil {
		panic(err)
	}

	route := &Route{
		method:     method,
		pattern:    prefix + pattern,
		regex:      regex,
		paramNames: names,
		handler:    h,
		middleware: mw,
	}
	r.routes[method] = append(r.routes[method], route)
	return route
}

// GET registers a handler for GET requests.
func (r *Router) GET(pattern string, handler any, middleware ...any) *Route {
	return r.Handle(http.MethodGet, pattern, handler, middleware...)
}

// POST registers a handler for POST requests.
func (r *Router) POST(pattern string, handler any, middleware ...any) *Route {
	return r.Handle(http.MethodPost, pattern, handler, middleware...)
}

// PUT registers a handler for PUT requests.
func (r *Router) PUT(pattern string, handler any, middleware ...any) *Route {
	return r.Handle(http.MethodPut, pattern, handler, middleware...)
}

// PATCH registers a handler for PATCH requests.
func (r *Router) PATCH(pattern string, handler any, middleware ...any) *Route {
	return r.Handle(http.MethodPatch, pattern, handler, middleware...)
}

// DELETE registers a handler for DELETE requests.
func (r *Router) DELETE(pattern string, handler any, middleware ...any) *Route {
	return r.Handle(http.MethodDelete, pattern, handler, middleware...)
}

// HEAD registers a handler for HEAD requests.
func (r *Router) HEAD(pattern string, handler any, middleware ...any) *Route {
	return r.Handle(http.MethodHead, pattern, handler, middleware...)
}

// Match registers the same handler for several methods.
func (r *Router) Match(methods []string, pattern string, handler any, middleware ...any) []*Route {
	// One registration: pending middleware covers every method, not just
	// the first one Handle consumes it for.
	pending := r.pending

	routes := make([]*Route, 0, len(methods))
	for _, m := range methods {
		r.pending = pending
		routes = append(routes, r.Handle(m, pattern, handler, middleware...))
	}
	return routes
}

// Any registers the handler for every supported method.
func (r *Router) Any(pattern string, handler any, middleware ...any) []*Route {
	methods := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodHead,
	}
	return r.Match(methods, pattern, handler, middleware...)
}

// Group runs fn with the given attributes pushed on the group stack. Groups
// nest: prefixes concatenate outermost first and group middleware applies to
// every route registered inside.
func (r *Router) Group(attrs GroupAttrs, fn func(r *Router)) {
	r.groups = append(r.groups, attrs)
	defer func() {
		r.groups = r.groups[:len(r.groups)-1]
	}()
	fn(r)
}

// Middleware queues middleware for the next registered route only.
func (r *Router) Middleware(middleware ...any) *Router {
	r.pending = append(r.pending, middleware...)
	return r
}

// Dispatch routes the request carried by c.
//
// OPTIONS requests never reach the route table: when a CORS middleware is
// bound under CORSBinding it runs around an empty 200, otherwise a bare 200
// is written. For any other method the routes registered for it are scanned
// in order and the first match runs; no match runs the not-found handler,
// which answers with a response rather than an error.
func (r *Router) Dispatch(c Context) error {
	if c.Method() == http.MethodOptions {
		return r.handleOptions(c)
	}

	for _, route := range r.routes[c.Method()] {
		params, ok := route.match(c.Path())
		if !ok {
			continue
		}

		c.Set(RouteParamsKey{}, params)

		h, err := r.buildChain(route)
		if err != nil {
			return err
		}
		return h(c)
	}

	return r.notFound(c)
}

func (r *Router) handleOptions(c Context) error {
	if !r.container.Bound(CORSBinding) {
		return c.NoContent(http.StatusOK)
	}

	resolved, err := r.container.Make(CORSBinding)
	if err != nil {
		return err
	}
	mw, err := asMiddleware(resolved, r.container)
	if err != nil {
		return err
	}

	return mw(func(c Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

// buildChain folds the route's middleware around its handler, last registered
// innermost, so middleware runs in registration order on the way in and in
// reverse on the way out.
func (r *Router) buildChain(route *Route) (HandlerFunc, error) {
	h := func(c Context) error {
		return route.handler.invoke(c, r.container)
	}

	for i := len(route.middleware) - 1; i >= 0; i-- {
		mw, err := asMiddleware(route.middleware[i], r.container)
		if err != nil {
			return nil, err
		}
		h = mw(h)
	}
	return h, nil
}
