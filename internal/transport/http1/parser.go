package http1

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/indigo-web/utils/uf"

	"github.com/skiff-web/skiff/http"
	"github.com/skiff-web/skiff/http/method"
	"github.com/skiff-web/skiff/http/status"
)

// Parse splits raw request bytes into the header block and the body and
// fills the request. The buffer must contain the \r\n\r\n terminator,
// otherwise the request is considered malformed.
func Parse(data []byte, req *http.Request) error {
	idx := bytes.Index(data, crlfcrlf)
	if idx == -1 {
		return status.ErrMalformedRequest
	}

	headerBlock := data[:idx]
	if !utf8.Valid(headerBlock) {
		return status.ErrMalformedRequest
	}

	req.Body = data[idx+len(crlfcrlf):]

	lines := strings.Split(uf.B2S(headerBlock), "\r\n")
	if err := parseRequestLine(lines[0], req); err != nil {
		return err
	}

	for _, line := range lines[1:] {
		key, value, found := strings.Cut(line, ":")
		if !found {
			// lines without a colon are silently ignored
			continue
		}

		req.Headers.Set(
			strings.ToLower(strings.TrimSpace(key)),
			strings.TrimSpace(value),
		)
	}

	return nil
}

func parseRequestLine(line string, req *http.Request) error {
	tokens := strings.Split(line, " ")
	if len(tokens) < 3 {
		return status.ErrBadRequestLine
	}

	req.Method = method.Parse(strings.ToUpper(tokens[0]))
	req.Path = tokens[1]
	req.Proto = tokens[2]

	return nil
}
