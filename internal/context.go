package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/lgzarturo/bootzen/pkg/cookie"
)

// Context carries one request through the handler chain. It satisfies
// context.Context by delegating to the request's context, so it can be handed
// to anything that takes a standard context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Method returns the request's HTTP method.
	Method() string

	// Path returns the request's URL path.
	Path() string

	// Param returns the named route parameter, or "" when the matched route
	// has no such placeholder.
	Param(name string) string

	// Params returns every route parameter extracted for the matched route.
	Params() map[string]string

	// Query returns the named query parameter, or "".
	Query(name string) string

	// QueryDefault returns the named query parameter, or def when absent or
	// empty.
	QueryDefault(name, def string) string

	// Form returns the named form value, parsing the body on first access.
	Form(name string) string

	// FormFile returns the first uploaded file under the given form key.
	FormFile(name string) (multipart.File, *multipart.FileHeader, error)

	// Header returns the named request header.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes v as a JSON response with the given status code.
	JSON(code int, v any) error

	// HTML writes s as an HTML response with the given status code.
	HTML(code int, s string) error

	// String writes s as a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a bodyless response.
	NoContent(code int) error

	// Redirect sends the client to url.
	Redirect(code int, url string) error

	// Error builds an HTTPError without writing anything. Return it from the
	// handler to let the error handler render it.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether a response has already been written.
	Written() bool

	// Logger returns the request logger for advanced usage.
	Logger() *slog.Logger

	// LogDebug logs at debug level with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs at info level with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs at warn level with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs at error level with optional attributes.
	LogError(msg string, attrs ...any)

	// Set stores a request-scoped value, also reachable through
	// c.Context().Value(key).
	Set(key any, value any)

	// Get returns a request-scoped value, or nil.
	Get(key any) any

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// SetCookie sets a plain cookie.
	SetCookie(name, value string, maxAge int)

	// DeleteCookie removes a cookie.
	DeleteCookie(name string)

	// CookieSigned returns a signed cookie value, or cookie.ErrNoSecret when
	// no signing secret is configured.
	CookieSigned(name string) (string, error)

	// SetCookieSigned sets a signed cookie, or returns cookie.ErrNoSecret
	// when no signing secret is configured.
	SetCookieSigned(name, value string, maxAge int) error

	// ResponseWriter returns the tracking response wrapper.
	ResponseWriter() *ResponseWriter
}

type requestContext struct {
	rw      *ResponseWriter
	request *http.Request
	logger  *slog.Logger
	cookies *cookie.Manager
}

func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger, cookies *cookie.Manager) *requestContext {
	return &requestContext{
		rw:      NewResponseWriter(w),
		request: r,
		logger:  logger,
		cookies: cookies,
	}
}

func (c *requestContext) Request() *http.Request { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.rw }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.rw }
func (c *requestContext) Context() context.Context { return c.request.Context() }
func (c *requestContext) Method() string { return c.request.Method }
func (c *requestContext) Path() string { return c.request.URL.Path }

// context.Context delegation.
func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{} { return c.request.Context().Done() }
func (c *requestContext) Err() error { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any { return c.request.Context().Value(key) }

func (c *requestContext) Param(name string) string { return c.Params()[name] }

func (c *requestContext) Params() map[string]string {
	params, _ := c.Get(RouteParamsKey{}).(map[string]string)
	return params
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, def string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return def
}

func (c *requestContext) Form(name string) string { return c.request.FormValue(name) }

func (c *requestContext) FormFile(name string) (multipart.File, *multipart.FileHeader, error) {
	return c.request.FormFile(name)
}

func (c *requestContext) Header(name string) string { return c.request.Header.Get(name) }
func (c *requestContext) SetHeader(name, value string) { c.rw.Header().Set(name, value) }

func (c *requestContext) JSON(code int, v any) error {
	c.rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.rw.WriteHeader(code)
	return json.NewEncoder(c.rw).Encode(v)
}

func (c *requestContext) HTML(code int, s string) error {
	return c.writeText("text/html; charset=utf-8", code, s)
}

func (c *requestContext) String(code int, s string) error {
	return c.writeText("text/plain; charset=utf-8", code, s)
}

func (c *requestContext) writeText(contentType string, code int, s string) error {
	c.rw.Header().Set("Content-Type", contentType)
	c.rw.WriteHeader(code)
	_, err := c.rw.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.rw.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.rw, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool { return c.rw.Written() }

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.Context(), msg, attrs...)
}

// Set rebinds the request to a child context carrying the value, so values
// survive into anything reading the plain request context.
func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.request.Context().Value(key) }

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookies.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookies.Set(c.rw, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookies.Delete(c.rw, name)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.cookies.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.cookies.SetSigned(c.rw, name, value, maxAge)
}
