package http1

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skiff-web/skiff/http"
	"github.com/skiff-web/skiff/http/mime"
	"github.com/skiff-web/skiff/http/status"
)

func frozenSerializer() *Serializer {
	ser := NewSerializer("skiff/test")
	ser.now = func() time.Time {
		return time.Date(2024, time.March, 5, 12, 30, 45, 0, time.UTC)
	}

	return ser
}

const frozenDate = "Tue, 05 Mar 2024 12:30:45 GMT"

func TestSerialize(t *testing.T) {
	t.Run("full response", func(t *testing.T) {
		resp := http.NewResponse().
			ContentType(mime.Plain).
			String("hello")

		wire := frozenSerializer().Serialize(resp)
		want := fmt.Sprintf(
			"HTTP/1.1 200 OK\r\n"+
				"Date: %s\r\n"+
				"Connection: close\r\n"+
				"Server: skiff/test\r\n"+
				"Content-Length: 5\r\n"+
				"Content-Type: text/plain\r\n"+
				"\r\n"+
				"hello",
			frozenDate,
		)
		require.Equal(t, want, string(wire))
	})

	t.Run("extra headers after the standard set", func(t *testing.T) {
		resp := http.NewResponse().
			Code(status.Found).
			Header("Location", "https://example.com/")

		wire := frozenSerializer().Serialize(resp)
		want := fmt.Sprintf(
			"HTTP/1.1 302 Found\r\n"+
				"Date: %s\r\n"+
				"Connection: close\r\n"+
				"Server: skiff/test\r\n"+
				"Content-Length: 0\r\n"+
				"Location: https://example.com/\r\n"+
				"\r\n",
			frozenDate,
		)
		require.Equal(t, want, string(wire))
	})

	t.Run("content length always equals body length", func(t *testing.T) {
		body := make([]byte, 1234)
		wire := frozenSerializer().Serialize(http.NewResponse().Bytes(body))
		require.Contains(t, string(wire), "Content-Length: 1234\r\n")
	})

	t.Run("custom reason phrase", func(t *testing.T) {
		resp := http.NewResponse().
			Code(status.InternalServerError).
			Status("Server Error")

		wire := frozenSerializer().Serialize(resp)
		require.Contains(t, string(wire), "HTTP/1.1 500 Server Error\r\n")
	})

	t.Run("buffer is reused between responses", func(t *testing.T) {
		ser := frozenSerializer()
		first := string(ser.Serialize(http.NewResponse().String("first")))
		second := string(ser.Serialize(http.NewResponse().String("second")))
		require.NotEqual(t, first, second)
		require.Contains(t, second, "second")
		require.NotContains(t, second, "first")
	})
}
