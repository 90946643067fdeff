package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lgzarturo/bootzen/internal"
	"github.com/lgzarturo/bootzen/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	run := func(mw internal.Middleware, handler internal.HandlerFunc) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := newTestContext(httptest.NewRecorder(), req)
		return mw(handler)(c)
	}

	t.Run("panic becomes an error with the panic value", func(t *testing.T) {
		t.Parallel()

		err := run(middlewares.Recover(), func(c internal.Context) error {
			panic("boom")
		})

		require.Error(t, err)
		require.True(t, middlewares.IsPanicError(err))

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "boom", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("stack capture can be disabled", func(t *testing.T) {
		t.Parallel()

		err := run(
			middlewares.Recover(middlewares.WithRecoverDisablePrintStack()),
			func(c internal.Context) error { panic(42) },
		)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, 42, pe.Value)
		require.Empty(t, pe.Stack)
	})

	t.Run("stack size caps the trace", func(t *testing.T) {
		t.Parallel()

		err := run(
			middlewares.Recover(middlewares.WithRecoverStackSize(64)),
			func(c internal.Context) error { panic("small") },
		)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.LessOrEqual(t, len(pe.Stack), 64)
	})

	t.Run("handler errors pass through untouched", func(t *testing.T) {
		t.Parallel()

		want := errors.New("plain failure")
		err := run(middlewares.Recover(), func(c internal.Context) error {
			return want
		})

		require.ErrorIs(t, err, want)
		require.False(t, middlewares.IsPanicError(err))
	})

	t.Run("successful handlers are untouched", func(t *testing.T) {
		t.Parallel()

		err := run(middlewares.Recover(), func(c internal.Context) error {
			return c.String(http.StatusOK, "fine")
		})

		require.NoError(t, err)
	})
}
