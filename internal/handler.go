package internal

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// Handler declares routes on a router.
//
// Example:
//
//	type AccountHandler struct {
//	    accounts *AccountService
//	}
//
//	func (h *AccountHandler) Routes(r *bootzen.Router) {
//	    r.GET("/accounts", h.list)
//	    r.POST("/accounts", h.create)
//	}
type Handler interface {
	Routes(r *Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the app's error handler.
type HandlerFunc func(c Context) error

// ActionFunc is an alternative handler shape that returns a value instead of
// writing a response. The returned value is coerced: maps, slices, structs
// and pointers render as JSON, strings render as HTML, everything else is
// stringified and rendered as HTML.
type ActionFunc func(c Context) (any, error)

// ControllerRef names a container-registered service and a method on it.
// The service is resolved from the container at dispatch time, so routes can
// reference controllers that are bound after route registration.
type ControllerRef struct {
	Name   string
	Method string
}

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect or modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Auth(next bootzen.HandlerFunc) bootzen.HandlerFunc {
//	    return func(c bootzen.Context) error {
//	        if !isAuthenticated(c) {
//	            return c.Redirect(http.StatusFound, "/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// Processor is an object form of Middleware. Types implementing it can be
// registered on routes directly or resolved out of the container by name.
type Processor interface {
	Process(c Context, next HandlerFunc) error
}

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

// routeHandler is the normalized form a registered handler is stored in.
// Exactly one of fn or ref is set; ref handlers resolve their controller
// from the container on every dispatch.
type routeHandler struct {
	fn  HandlerFunc
	ref ControllerRef
}

// asRouteHandler normalizes the supported handler shapes. Unsupported shapes
// return ErrInvalidHandler so registration can fail loudly instead of
// deferring the problem to the first matching request.
func asRouteHandler(h any) (routeHandler, error) {
	switch v := h.(type) {
	case HandlerFunc:
		return routeHandler{fn: v}, nil
	case func(c Context) error:
		return routeHandler{fn: v}, nil
	case ActionFunc:
		return routeHandler{fn: renderAction(v)}, nil
	case func(c Context) (any, error):
		return routeHandler{fn: renderAction(v)}, nil
	case string:
		name, method, ok := strings.Cut(v, "@")
		if !ok || name == "" || method == "" {
			return routeHandler{}, fmt.Errorf("%w: %q is not a Service@Method reference", ErrInvalidHandler, v)
		}
		return routeHandler{ref: ControllerRef{Name: name, Method: method}}, nil
	case ControllerRef:
		if v.Name == "" || v.Method == "" {
			return routeHandler{}, fmt.Errorf("%w: controller reference needs a name and a method", ErrInvalidHandler)
		}
		return routeHandler{ref: v}, nil
	default:
		return routeHandler{}, fmt.Errorf("%w: unsupported handler type %T", ErrInvalidHandler, h)
	}
}

// invoke runs the handler. Controller references are resolved from the
// container and their method looked up by name; a missing service or method
// is a configuration error and propagates as one.
func (h routeHandler) invoke(c Context, container *Container) error {
	if h.fn != nil {
		return h.fn(c)
	}

	svc, err := container.Make(h.ref.Name)
	if err != nil {
		return err
	}

	m := reflect.ValueOf(svc).MethodByName(h.ref.Method)
	if !m.IsValid() {
		return fmt.Errorf("%w: %T has no method %q", ErrInvalidHandler, svc, h.ref.Method)
	}

	switch fn := m.Interface().(type) {
	case func(c Context) error:
		return fn(c)
	case func(c Context) (any, error):
		return renderAction(fn)(c)
	default:
		return fmt.Errorf("%w: method %s.%s has unsupported signature", ErrInvalidHandler, h.ref.Name, h.ref.Method)
	}
}

// renderAction adapts a value-returning handler into a HandlerFunc by
// coercing the returned value into a response.
func renderAction(fn ActionFunc) HandlerFunc {
	return func(c Context) error {
		v, err := fn(c)
		if err != nil {
			return err
		}
		return renderValue(c, v)
	}
}

// renderValue writes v as a response, picking the representation from its
// type. Handlers that already wrote a response get nothing appended.
func renderValue(c Context, v any) error {
	if c.Written() {
		return nil
	}
	if v == nil {
		return c.NoContent(http.StatusOK)
	}

	switch typed := v.(type) {
	case string:
		return c.HTML(http.StatusOK, typed)
	case fmt.Stringer:
		return c.HTML(http.StatusOK, typed.String())
	case error:
		return typed
	}

	switch reflect.Indirect(reflect.ValueOf(v)).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return c.JSON(http.StatusOK, v)
	default:
		return c.HTML(http.StatusOK, fmt.Sprint(v))
	}
}

// asMiddleware normalizes the supported middleware shapes. String references
// resolve a Processor or Middleware out of the container at wrap time.
func asMiddleware(m any, container *Container) (Middleware, error) {
	switch v := m.(type) {
	case Middleware:
		return v, nil
	case func(next HandlerFunc) HandlerFunc:
		return v, nil
	case Processor:
		return processorMiddleware(v), nil
	case string:
		resolved, err := container.Make(v)
		if err != nil {
			return nil, err
		}
		if _, isString := resolved.(string); isString {
			return nil, fmt.Errorf("%w: %q resolved to a string", ErrInvalidMiddleware, v)
		}
		return asMiddleware(resolved, container)
	default:
		return nil, fmt.Errorf("%w: unsupported middleware type %T", ErrInvalidMiddleware, m)
	}
}

func processorMiddleware(p Processor) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			return p.Process(c, next)
		}
	}
}
