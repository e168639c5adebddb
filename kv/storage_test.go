package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("get is case-insensitive", func(t *testing.T) {
		s := New().Add("content-type", "text/plain")

		value, found := s.Get("Content-Type")
		require.True(t, found)
		require.Equal(t, "text/plain", value)
	})

	t.Run("set overwrites existing key", func(t *testing.T) {
		s := New().
			Set("host", "first").
			Set("Host", "second")

		require.Equal(t, 1, s.Len())
		require.Equal(t, "second", s.Value("host"))
	})

	t.Run("value or default", func(t *testing.T) {
		s := New()
		require.Equal(t, "fallback", s.ValueOr("missing", "fallback"))
		require.Empty(t, s.Value("missing"))
	})

	t.Run("iter yields insertion order", func(t *testing.T) {
		s := New().Add("a", "1").Add("b", "2")

		var keys []string
		for key := range s.Iter() {
			keys = append(keys, key)
		}

		require.Equal(t, []string{"a", "b"}, keys)
	})

	t.Run("clear keeps nothing", func(t *testing.T) {
		s := New().Add("a", "1")
		s.Clear()
		require.True(t, s.Empty())
		require.False(t, s.Has("a"))
	})
}
