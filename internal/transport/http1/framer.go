package http1

import (
	"bytes"
	"net"
	"strconv"
	"time"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"

	"github.com/skiff-web/skiff/http/status"
	"github.com/skiff-web/skiff/internal/buffer"
)

// Limits bound how much and for how long a single request may occupy a
// worker. Both engines instantiate their own values.
type Limits struct {
	ChunkSize      int
	MaxRequestSize int
	ReadTimeout    time.Duration
}

var crlfcrlf = []byte("\r\n\r\n")

// Framer turns the raw byte stream of a connection into a delimited request
// buffer. It reads in fixed-size chunks until the header terminator appears,
// then keeps reading until the body declared by Content-Length is complete.
type Framer struct {
	conn  net.Conn
	buff  *buffer.Buffer
	chunk []byte
	lim   Limits
}

func NewFramer(conn net.Conn, lim Limits) *Framer {
	return &Framer{
		conn:  conn,
		buff:  buffer.New(lim.ChunkSize, lim.MaxRequestSize),
		chunk: make([]byte, lim.ChunkSize),
		lim:   lim,
	}
}

// Frame accumulates a single request. On success the returned slice holds
// the complete header block and body. Any returned error that isn't a
// status.HTTPError means the transport failed (timeout, reset, peer close)
// and no response must be written.
func (f *Framer) Frame() ([]byte, error) {
	for {
		if err := f.read(); err != nil {
			return f.buff.Bytes(), err
		}

		if idx := bytes.Index(f.buff.Bytes(), crlfcrlf); idx != -1 {
			return f.complete(idx)
		}
	}
}

// complete reads the remainder of the body once the header block is in. The
// declared length is trusted only up to the buffer cap.
func (f *Framer) complete(headerEnd int) ([]byte, error) {
	total := headerEnd + len(crlfcrlf) + declaredBodyLength(f.buff.Bytes()[:headerEnd])
	if total > f.lim.MaxRequestSize {
		return f.buff.Bytes(), status.ErrTooLargeRequest
	}

	for f.buff.Len() < total {
		if err := f.read(); err != nil {
			return f.buff.Bytes(), err
		}
	}

	return f.buff.Bytes(), nil
}

func (f *Framer) read() error {
	if err := f.conn.SetReadDeadline(time.Now().Add(f.lim.ReadTimeout)); err != nil {
		return err
	}

	n, err := f.conn.Read(f.chunk)
	if n > 0 && !f.buff.Append(f.chunk[:n]) {
		return status.ErrTooLargeRequest
	}

	return err
}

// declaredBodyLength scans the header block for Content-Length. Zero is
// returned when the header is absent or unparseable, matching a bodiless
// request.
func declaredBodyLength(headerBlock []byte) int {
	for _, line := range bytes.Split(headerBlock, []byte("\r\n"))[1:] {
		key, value, found := bytes.Cut(line, []byte{':'})
		if !found {
			continue
		}

		if !strcomp.EqualFold(uf.B2S(bytes.TrimSpace(key)), "content-length") {
			continue
		}

		n, err := strconv.Atoi(uf.B2S(bytes.TrimSpace(value)))
		if err != nil || n < 0 {
			return 0
		}

		return n
	}

	return 0
}
