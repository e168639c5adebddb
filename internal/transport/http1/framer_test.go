package http1

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skiff-web/skiff/http/status"
)

func testLimits() Limits {
	return Limits{
		ChunkSize:      16,
		MaxRequestSize: 1024,
		ReadTimeout:    time.Second,
	}
}

func TestFramer(t *testing.T) {
	t.Run("request without body", func(t *testing.T) {
		client, server := net.Pipe()
		go func() {
			_, _ = client.Write([]byte("GET / HTTP/1.1\r\nHost: a\r\n\r\n"))
		}()

		raw, err := NewFramer(server, testLimits()).Frame()
		require.NoError(t, err)
		require.Equal(t, []byte("GET / HTTP/1.1\r\nHost: a\r\n\r\n"), raw)
	})

	t.Run("body straddling the terminator is completed", func(t *testing.T) {
		head := "POST /file-upload HTTP/1.1\r\nContent-Length: 20\r\n\r\n"
		body := "01234567890123456789"

		client, server := net.Pipe()
		go func() {
			// the header block plus a partial body first, the rest later,
			// as a slow link would deliver it
			_, _ = client.Write([]byte(head + body[:5]))
			time.Sleep(10 * time.Millisecond)
			_, _ = client.Write([]byte(body[5:]))
		}()

		raw, err := NewFramer(server, testLimits()).Frame()
		require.NoError(t, err)
		require.Equal(t, []byte(head+body), raw)
	})

	t.Run("declared length is case-insensitive", func(t *testing.T) {
		head := "POST / HTTP/1.1\r\nCONTENT-LENGTH: 4\r\n\r\n"

		client, server := net.Pipe()
		go func() {
			_, _ = client.Write([]byte(head))
			_, _ = client.Write([]byte("data"))
		}()

		raw, err := NewFramer(server, testLimits()).Frame()
		require.NoError(t, err)
		require.Equal(t, []byte(head+"data"), raw)
	})

	t.Run("oversized request is rejected", func(t *testing.T) {
		lim := testLimits()
		lim.MaxRequestSize = 64

		client, server := net.Pipe()
		go func() {
			chunk := make([]byte, 16)
			for i := 0; i < 5; i++ {
				if _, err := client.Write(chunk); err != nil {
					return
				}
			}
		}()

		_, err := NewFramer(server, lim).Frame()
		require.Equal(t, status.ErrTooLargeRequest, err)
	})

	t.Run("peer close returns what arrived", func(t *testing.T) {
		client, server := net.Pipe()
		go func() {
			_, _ = client.Write([]byte("GET / HT"))
			_ = client.Close()
		}()

		raw, err := NewFramer(server, testLimits()).Frame()
		require.Error(t, err)
		require.Equal(t, []byte("GET / HT"), raw)
	})

	t.Run("read timeout without data", func(t *testing.T) {
		lim := testLimits()
		lim.ReadTimeout = 20 * time.Millisecond

		client, server := net.Pipe()
		defer client.Close()

		start := time.Now()
		raw, err := NewFramer(server, lim).Frame()
		require.Error(t, err)
		require.Empty(t, raw)
		require.Less(t, time.Since(start), time.Second)
	})

	t.Run("declared length capped by the limit", func(t *testing.T) {
		lim := testLimits()
		lim.MaxRequestSize = 64

		client, server := net.Pipe()
		go func() {
			_, _ = client.Write([]byte("POST / HTTP/1.1\r\nContent-Length: 99999\r\n\r\n"))
		}()

		_, err := NewFramer(server, lim).Frame()
		require.Equal(t, status.ErrTooLargeRequest, err)
	})
}
