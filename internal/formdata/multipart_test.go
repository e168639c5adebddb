package formdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func multipartBody(boundary string, parts ...string) []byte {
	body := ""
	for _, part := range parts {
		body += "--" + boundary + "\r\n" + part + "\r\n"
	}

	return []byte(body + "--" + boundary + "--\r\n")
}

func TestBoundary(t *testing.T) {
	boundary, found := Boundary("multipart/form-data; boundary=xYz123")
	require.True(t, found)
	require.Equal(t, "xYz123", boundary)

	_, found = Boundary("multipart/form-data")
	require.False(t, found)
}

func TestFilenameAttr(t *testing.T) {
	name, found := FilenameAttr(`attachment; filename="report.pdf"`)
	require.True(t, found)
	require.Equal(t, "report.pdf", name)

	_, found = FilenameAttr("attachment")
	require.False(t, found)
}

func TestFirstFile(t *testing.T) {
	t.Run("single file part", func(t *testing.T) {
		body := multipartBody("BOUND",
			"Content-Disposition: form-data; name=\"file\"; filename=\"test.txt\"\r\n"+
				"Content-Type: text/plain\r\n"+
				"\r\n"+
				"hello world",
		)

		name, content, found := FirstFile(body, "BOUND")
		require.True(t, found)
		require.Equal(t, "test.txt", name)
		require.Equal(t, []byte("hello world"), content)
	})

	t.Run("first of several files wins", func(t *testing.T) {
		body := multipartBody("BOUND",
			"Content-Disposition: form-data; name=\"a\"; filename=\"one.txt\"\r\n\r\nfirst",
			"Content-Disposition: form-data; name=\"b\"; filename=\"two.txt\"\r\n\r\nsecond",
		)

		name, content, found := FirstFile(body, "BOUND")
		require.True(t, found)
		require.Equal(t, "one.txt", name)
		require.Equal(t, []byte("first"), content)
	})

	t.Run("non-file fields are skipped", func(t *testing.T) {
		body := multipartBody("BOUND",
			"Content-Disposition: form-data; name=\"comment\"\r\n\r\njust text",
			"Content-Disposition: form-data; name=\"f\"; filename=\"data.bin\"\r\n\r\npayload",
		)

		name, content, found := FirstFile(body, "BOUND")
		require.True(t, found)
		require.Equal(t, "data.bin", name)
		require.Equal(t, []byte("payload"), content)
	})

	t.Run("binary content survives", func(t *testing.T) {
		payload := []byte{0x00, 0x01, 0xff, 0xfe, '\r', '\n', 0x7f}
		body := append([]byte("--BOUND\r\nContent-Disposition: form-data; filename=\"b.bin\"\r\n\r\n"), payload...)
		body = append(body, []byte("\r\n--BOUND--\r\n")...)

		name, content, found := FirstFile(body, "BOUND")
		require.True(t, found)
		require.Equal(t, "b.bin", name)
		require.Equal(t, payload, content)
	})

	t.Run("no file part", func(t *testing.T) {
		body := multipartBody("BOUND",
			"Content-Disposition: form-data; name=\"comment\"\r\n\r\nhello",
		)

		_, _, found := FirstFile(body, "BOUND")
		require.False(t, found)
	})

	t.Run("empty filename attribute is still a match", func(t *testing.T) {
		body := multipartBody("BOUND",
			"Content-Disposition: form-data; name=\"f\"; filename=\"\"\r\n\r\ndata",
		)

		name, content, found := FirstFile(body, "BOUND")
		require.True(t, found)
		require.Empty(t, name)
		require.Equal(t, []byte("data"), content)
	})
}
