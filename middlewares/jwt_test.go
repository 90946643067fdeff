package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/lgzarturo/bootzen/internal"
	"github.com/lgzarturo/bootzen/middlewares"
)

var testJWTSecret = []byte("test-secret-key-for-jwt-middleware")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestJWT(t *testing.T) {
	t.Parallel()

	t.Run("valid bearer token passes and stores claims", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testJWTSecret, jwt.MapClaims{
			"sub": "user-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		var gotClaims jwt.MapClaims
		mw := middlewares.JWT(testJWTSecret)
		handler := mw(func(c internal.Context) error {
			gotClaims = middlewares.GetJWTClaims(c)
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.NotNil(t, gotClaims)
		require.Equal(t, "user-123", gotClaims["sub"])
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.JWT(testJWTSecret)
		handler := mw(func(c internal.Context) error {
			t.Fatal("handler should not be called")
			return nil
		})

		err := handler(ctx)
		require.Error(t, err)

		httpErr := internal.AsHTTPError(err)
		require.NotNil(t, httpErr)
		require.Equal(t, http.StatusUnauthorized, httpErr.Code)
		require.Equal(t, "missing authentication token", httpErr.Message)
	})

	t.Run("malformed authorization header returns 401", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.JWT(testJWTSecret)
		handler := mw(func(c internal.Context) error {
			t.Fatal("handler should not be called")
			return nil
		})

		err := handler(ctx)
		require.Error(t, err)

		httpErr := internal.AsHTTPError(err)
		require.NotNil(t, httpErr)
		require.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("expired token returns 401 with dedicated message", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testJWTSecret, jwt.MapClaims{
			"sub": "user-123",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.JWT(testJWTSecret)
		handler := mw(func(c internal.Context) error {
			t.Fatal("handler should not be called")
			return nil
		})

		err := handler(ctx)
		require.Error(t, err)

		httpErr := internal.AsHTTPError(err)
		require.NotNil(t, httpErr)
		require.Equal(t, http.StatusUnauthorized, httpErr.Code)
		require.Equal(t, "token expired", httpErr.Message)
	})

	t.Run("token signed with different secret is rejected", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, []byte("a-completely-different-secret-key!!"), jwt.MapClaims{
			"sub": "user-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.JWT(testJWTSecret)
		handler := mw(func(c internal.Context) error {
			t.Fatal("handler should not be called")
			return nil
		})

		err := handler(ctx)
		require.Error(t, err)

		httpErr := internal.AsHTTPError(err)
		require.NotNil(t, httpErr)
		require.Equal(t, http.StatusUnauthorized, httpErr.Code)
		require.Equal(t, "invalid token", httpErr.Message)
	})

	t.Run("unexpected signing method is rejected", func(t *testing.T) {
		t.Parallel()

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"sub": "user-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(testJWTSecret)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.JWT(testJWTSecret)
		handler := mw(func(c internal.Context) error {
			t.Fatal("handler should not be called")
			return nil
		})

		err = handler(ctx)
		require.Error(t, err)
	})

	t.Run("cookie extractor reads token from cookie", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testJWTSecret, jwt.MapClaims{
			"sub": "cookie-user",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.JWT(testJWTSecret,
			middlewares.WithJWTExtractors(middlewares.FromCookie("auth_token")),
		)

		var gotClaims jwt.MapClaims
		handler := mw(func(c internal.Context) error {
			gotClaims = middlewares.GetJWTClaims(c)
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, "cookie-user", gotClaims["sub"])
	})

	t.Run("query extractor reads token from query string", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testJWTSecret, jwt.MapClaims{
			"sub": "query-user",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.JWT(testJWTSecret,
			middlewares.WithJWTExtractors(middlewares.FromQuery("token")),
		)

		var gotClaims jwt.MapClaims
		handler := mw(func(c internal.Context) error {
			gotClaims = middlewares.GetJWTClaims(c)
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, "query-user", gotClaims["sub"])
	})

	t.Run("extractors are tried in order", func(t *testing.T) {
		t.Parallel()

		headerToken := signToken(t, testJWTSecret, jwt.MapClaims{
			"sub": "header-user",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		cookieToken := signToken(t, testJWTSecret, jwt.MapClaims{
			"sub": "cookie-user",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+headerToken)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: cookieToken})
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.JWT(testJWTSecret,
			middlewares.WithJWTExtractors(
				middlewares.FromBearerToken(),
				middlewares.FromCookie("auth_token"),
			),
		)

		var gotClaims jwt.MapClaims
		handler := mw(func(c internal.Context) error {
			gotClaims = middlewares.GetJWTClaims(c)
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, "header-user", gotClaims["sub"])
	})
}

func TestGetJWTClaims(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when middleware not applied", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		require.Nil(t, middlewares.GetJWTClaims(ctx))
	})
}
