package middlewares_test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lgzarturo/bootzen/internal"
)

// baseContext aliases internal.Context so it can be embedded below without
// the field name colliding with the Context() method.
type baseContext = internal.Context

// testContext implements the slice of internal.Context the middlewares in
// this package touch; the embedded interface panics for anything else.
type testContext struct {
	baseContext

	rw      *internal.ResponseWriter
	request *http.Request
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{rw: internal.NewResponseWriter(w), request: r}
}

func (c *testContext) Request() *http.Request { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.rw }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.rw }
func (c *testContext) Context() context.Context { return c.request.Context() }
func (c *testContext) Method() string { return c.request.Method }
func (c *testContext) Path() string { return c.request.URL.Path }
func (c *testContext) Query(name string) string { return c.request.URL.Query().Get(name) }
func (c *testContext) Header(name string) string { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.rw.Header().Set(name, value) }
func (c *testContext) Written() bool { return c.rw.Written() }

// Set rebinds the request context the way the real context does, so logger
// extractors and GetTimeoutContext observe stored values.
func (c *testContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any { return c.request.Context().Value(key) }

func (c *testContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *testContext) JSON(code int, v any) error {
	c.rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.rw.WriteHeader(code)
	return json.NewEncoder(c.rw).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.rw.WriteHeader(code)
	_, err := c.rw.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.rw.WriteHeader(code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) LogDebug(msg string, attrs ...any) {}
func (c *testContext) LogInfo(msg string, attrs ...any)  {}
func (c *testContext) LogWarn(msg string, attrs ...any)  {}
func (c *testContext) LogError(msg string, attrs ...any) {}
