package middlewares_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lgzarturo/bootzen/middlewares"
)

func TestPanicError(t *testing.T) {
	t.Parallel()

	t.Run("message includes the panic value", func(t *testing.T) {
		t.Parallel()

		err := &middlewares.PanicError{Value: "boom"}
		require.Contains(t, err.Error(), "boom")
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("dispatch failed: %w", &middlewares.PanicError{Value: 1})
		require.True(t, middlewares.IsPanicError(wrapped))

		pe, ok := middlewares.AsPanicError(wrapped)
		require.True(t, ok)
		require.Equal(t, 1, pe.Value)
	})

	t.Run("other errors are not panic errors", func(t *testing.T) {
		t.Parallel()

		require.False(t, middlewares.IsPanicError(errors.New("plain")))
		_, ok := middlewares.AsPanicError(errors.New("plain"))
		require.False(t, ok)
	})
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	t.Run("message carries the budget", func(t *testing.T) {
		t.Parallel()

		err := &middlewares.TimeoutError{Duration: 250 * time.Millisecond}
		require.Contains(t, err.Error(), "250ms")
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("handler: %w", &middlewares.TimeoutError{Duration: time.Second})
		require.True(t, middlewares.IsTimeoutError(wrapped))

		te, ok := middlewares.AsTimeoutError(wrapped)
		require.True(t, ok)
		require.Equal(t, time.Second, te.Duration)
	})

	t.Run("other errors are not timeout errors", func(t *testing.T) {
		t.Parallel()

		require.False(t, middlewares.IsTimeoutError(errors.New("plain")))
	})
}
