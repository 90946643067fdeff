package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompilePattern(t *testing.T) {
	t.Parallel()

	t.Run("literal pattern", func(t *testing.T) {
		t.Parallel()

		re, names, err := compilePattern("/items")
		require.NoError(t, err)
		require.Empty(t, names)
		require.True(t, re.MatchString("/items"))
		require.False(t, re.MatchString("/items/"))
		require.False(t, re.MatchString("/items/1"))
		require.False(t, re.MatchString("/prefix/items"))
	})

	t.Run("single placeholder", func(t *testing.T) {
		t.Parallel()

		re, names, err := compilePattern("/items/{id}")
		require.NoError(t, err)
		require.Equal(t, []string{"id"}, names)
		require.True(t, re.MatchString("/items/42"))
		require.True(t, re.MatchString("/items/abc-def"))
		require.False(t, re.MatchString("/items"))
		require.False(t, re.MatchString("/items/"))
		require.False(t, re.MatchString("/items/42/edit"))
	})

	t.Run("multiple placeholders", func(t *testing.T) {
		t.Parallel()

		re, names, err := compilePattern("/users/{user}/posts/{post}")
		require.NoError(t, err)
		require.Equal(t, []string{"user", "post"}, names)

		m := re.FindStringSubmatch("/users/7/posts/99")
		require.Len(t, m, 3)
		require.Equal(t, "7", m[1])
		require.Equal(t, "99", m[2])
	})

	t.Run("placeholder does not span segments", func(t *testing.T) {
		t.Parallel()

		re, _, err := compilePattern("/files/{name}")
		require.NoError(t, err)
		require.False(t, re.MatchString("/files/a/b"))
	})

	t.Run("regex metacharacters in literals are escaped", func(t *testing.T) {
		t.Parallel()

		re, _, err := compilePattern("/v1.0/items")
		require.NoError(t, err)
		require.True(t, re.MatchString("/v1.0/items"))
		require.False(t, re.MatchString("/v1x0/items"))
	})

	t.Run("unclosed brace is a literal", func(t *testing.T) {
		t.Parallel()

		re, names, err := compilePattern("/items/{id")
		require.NoError(t, err)
		require.Empty(t, names)
		require.True(t, re.MatchString("/items/{id"))
		require.False(t, re.MatchString("/items/42"))
	})
}

func TestRouteMatch(t *testing.T) {
	t.Parallel()

	newRoute := func(pattern string) *Route {
		re, names, err := compilePattern(pattern)
		require.NoError(t, err)
		return &Route{pattern: pattern, regex: re, paramNames: names}
	}

	t.Run("extracts named parameters", func(t *testing.T) {
		t.Parallel()

		r := newRoute("/users/{user}/posts/{post}")
		params, ok := r.match("/users/7/posts/99")
		require.True(t, ok)
		require.Equal(t, map[string]string{"user": "7", "post": "99"}, params)
	})

	t.Run("no parameters for literal routes", func(t *testing.T) {
		t.Parallel()

		r := newRoute("/about")
		params, ok := r.match("/about")
		require.True(t, ok)
		require.Empty(t, params)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		r := newRoute("/users/{id}")
		params, ok := r.match("/posts/1")
		require.False(t, ok)
		require.Nil(t, params)
	})

	t.Run("surplus names without captures are absent", func(t *testing.T) {
		t.Parallel()

		// A name past the capture list is skipped rather than panicking.
		re, _, err := compilePattern("/items/{id}")
		require.NoError(t, err)
		r := &Route{regex: re, paramNames: []string{"id", "ghost"}}

		params, ok := r.match("/items/5")
		require.True(t, ok)
		require.Equal(t, map[string]string{"id": "5"}, params)
		require.NotContains(t, params, "ghost")
	})
}
