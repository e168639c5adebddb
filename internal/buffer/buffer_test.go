package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	t.Run("append within the cap", func(t *testing.T) {
		buff := New(4, 16)
		require.True(t, buff.Append([]byte("hello")))
		require.True(t, buff.Append([]byte(" world")))
		require.Equal(t, []byte("hello world"), buff.Bytes())
		require.Equal(t, 11, buff.Len())
	})

	t.Run("append beyond the cap is refused", func(t *testing.T) {
		buff := New(4, 8)
		require.True(t, buff.Append([]byte("12345678")))
		require.False(t, buff.Append([]byte("9")))
		// the refused append leaves the content untouched
		require.Equal(t, []byte("12345678"), buff.Bytes())
	})

	t.Run("clear keeps the capacity", func(t *testing.T) {
		buff := New(4, 16)
		require.True(t, buff.Append([]byte("data")))
		buff.Clear()
		require.Zero(t, buff.Len())
		require.True(t, buff.Append([]byte("more")))
		require.Equal(t, []byte("more"), buff.Bytes())
	})
}
