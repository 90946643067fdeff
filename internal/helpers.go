package internal

import (
	"net/http"
	"strconv"
)

// WrapHTTPHandler adapts a plain http.Handler to a HandlerFunc so standard
// library handlers can be mounted on the router.
func WrapHTTPHandler(h http.Handler) HandlerFunc {
	return func(c Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

// primitive covers the types route and query parameters can be parsed into.
type primitive interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the request-scoped value under key as a T, or T's zero
// value when the key is absent or holds a different type.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// Param parses the named route parameter into T. Missing or unparseable
// values come back as T's zero value; use the error-free shape only where
// that ambiguity is acceptable.
func Param[T primitive](c Context, name string) T {
	v, _ := parse[T](c.Param(name))
	return v
}

// Query parses the named query parameter into T, zero on failure.
func Query[T primitive](c Context, name string) T {
	v, _ := parse[T](c.Query(name))
	return v
}

// QueryDefault parses the named query parameter into T, substituting def when
// the parameter is absent, empty, or unparseable.
func QueryDefault[T primitive](c Context, name string, def T) T {
	v, ok := parse[T](c.Query(name))
	if !ok {
		return def
	}
	return v
}

func parse[T primitive](raw string) (T, bool) {
	var zero T
	if raw == "" {
		return zero, false
	}

	var v any
	var err error
	switch any(zero).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	default:
		return zero, false
	}
	if err != nil {
		return zero, false
	}
	return any(v).(T), true
}
