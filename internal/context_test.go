package internal

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lgzarturo/bootzen/pkg/cookie"
	"github.com/lgzarturo/bootzen/pkg/logger"
)

func TestContext_RequestAccess(t *testing.T) {
	t.Parallel()

	c, _ := newTestCtx(http.MethodPost, "/items/5?page=2&sort=")

	require.Equal(t, http.MethodPost, c.Method())
	require.Equal(t, "/items/5", c.Path())
	require.Equal(t, "2", c.Query("page"))
	require.Equal(t, "", c.Query("missing"))
	require.Equal(t, "10", c.QueryDefault("limit", "10"))
	require.Equal(t, "2", c.QueryDefault("page", "10"))
	// Empty values fall back to the default too.
	require.Equal(t, "name", c.QueryDefault("sort", "name"))
}

func TestContext_Params(t *testing.T) {
	t.Parallel()

	t.Run("reads router-stored parameters", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestCtx(http.MethodGet, "/")
		c.Set(RouteParamsKey{}, map[string]string{"id": "42", "tab": "all"})

		require.Equal(t, "42", c.Param("id"))
		require.Equal(t, "all", c.Param("tab"))
		require.Equal(t, "", c.Param("missing"))
		require.Equal(t, map[string]string{"id": "42", "tab": "all"}, c.Params())
	})

	t.Run("empty before dispatch", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestCtx(http.MethodGet, "/")
		require.Nil(t, c.Params())
		require.Equal(t, "", c.Param("id"))
	})
}

func TestContext_Form(t *testing.T) {
	t.Parallel()

	form := url.Values{"name": {"widget"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c := newContext(httptest.NewRecorder(), req, logger.NewNope(), cookie.New())

	require.Equal(t, "widget", c.Form("name"))
	require.Equal(t, "", c.Form("missing"))
}

func TestContext_Responses(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestCtx(http.MethodGet, "/")
		require.NoError(t, c.JSON(http.StatusCreated, map[string]string{"a": "b"}))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		require.JSONEq(t, `{"a": "b"}`, rec.Body.String())
		require.True(t, c.Written())
	})

	t.Run("html", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestCtx(http.MethodGet, "/")
		require.NoError(t, c.HTML(http.StatusOK, "<p>hi</p>"))
		require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		require.Equal(t, "<p>hi</p>", rec.Body.String())
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestCtx(http.MethodGet, "/")
		require.NoError(t, c.String(http.StatusOK, "plain"))
		require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		require.Equal(t, "plain", rec.Body.String())
	})

	t.Run("no content", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestCtx(http.MethodGet, "/")
		require.NoError(t, c.NoContent(http.StatusAccepted))
		require.Equal(t, http.StatusAccepted, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestCtx(http.MethodGet, "/")
		require.NoError(t, c.Redirect(http.StatusFound, "/login"))
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("error builds without writing", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestCtx(http.MethodGet, "/")
		err := c.Error(http.StatusConflict, "conflict")
		require.Equal(t, http.StatusConflict, err.Code)
		require.False(t, c.Written())
		require.Empty(t, rec.Body.String())
	})
}

func TestContext_Values(t *testing.T) {
	t.Parallel()

	type key struct{}

	c, _ := newTestCtx(http.MethodGet, "/")
	require.Nil(t, c.Get(key{}))

	c.Set(key{}, "stored")
	require.Equal(t, "stored", c.Get(key{}))

	// Values are visible through the request context as well.
	require.Equal(t, "stored", c.Request().Context().Value(key{}))
	require.Equal(t, "stored", c.Value(key{}))
}

func TestContext_Headers(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-In", "in-value")
	rec := httptest.NewRecorder()
	c := newContext(rec, req, logger.NewNope(), cookie.New())

	require.Equal(t, "in-value", c.Header("X-In"))
	c.SetHeader("X-Out", "out-value")
	require.Equal(t, "out-value", rec.Header().Get("X-Out"))
}

func TestContext_Cookies(t *testing.T) {
	t.Parallel()

	t.Run("plain round trip", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestCtx(http.MethodGet, "/")
		c.SetCookie("theme", "dark", 3600)

		res := rec.Result()
		require.Len(t, res.Cookies(), 1)
		require.Equal(t, "dark", res.Cookies()[0].Value)
	})

	t.Run("read from request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
		c := newContext(httptest.NewRecorder(), req, logger.NewNope(), cookie.New())

		v, err := c.Cookie("theme")
		require.NoError(t, err)
		require.Equal(t, "dark", v)

		_, err = c.Cookie("missing")
		require.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("signed requires a secret", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestCtx(http.MethodGet, "/")
		require.ErrorIs(t, c.SetCookieSigned("sid", "v", 60), cookie.ErrNoSecret)

		_, err := c.CookieSigned("sid")
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("signed round trip with secret", func(t *testing.T) {
		t.Parallel()

		mgr := cookie.New(cookie.WithSecret("0123456789abcdef0123456789abcdef"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := newContext(rec, req, logger.NewNope(), mgr)
		require.NoError(t, c.SetCookieSigned("sid", "user-1", 60))

		// Replay the issued cookie on a fresh request.
		req2 := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range rec.Result().Cookies() {
			req2.AddCookie(ck)
		}
		c2 := newContext(httptest.NewRecorder(), req2, logger.NewNope(), mgr)

		v, err := c2.CookieSigned("sid")
		require.NoError(t, err)
		require.Equal(t, "user-1", v)
	})
}
