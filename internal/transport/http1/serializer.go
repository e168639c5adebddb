package http1

import (
	"net"
	"strconv"
	"time"

	"github.com/skiff-web/skiff/http"
	"github.com/skiff-web/skiff/http/status"
)

const (
	contentType   = "Content-Type: "
	contentLength = "Content-Length: "
	dateFormat    = "Mon, 02 Jan 2006 15:04:05 GMT"
)

var (
	crlf    = []byte("\r\n")
	colonsp = []byte(": ")
)

// Serializer renders responses into their wire format. Every response
// carries Date, Connection: close, Server and Content-Length; persistent
// connections are never offered. An instance belongs to a single worker and
// re-uses its buffer between responses.
type Serializer struct {
	buff   []byte
	server string
	// now is stubbed in tests
	now func() time.Time
}

func NewSerializer(server string) *Serializer {
	return &Serializer{
		server: server,
		now:    time.Now,
	}
}

// Write renders the response and sends it over the connection in a single
// bulk write.
func (s *Serializer) Write(conn net.Conn, resp *http.Response) error {
	_, err := conn.Write(s.Serialize(resp))
	return err
}

// Serialize renders the response. The returned slice is valid until the
// next call.
func (s *Serializer) Serialize(resp *http.Response) []byte {
	fields := resp.Reveal()
	s.buff = s.buff[:0]

	s.renderResponseLine(fields)
	s.renderKnownHeader("Date: ", s.now().UTC().Format(dateFormat))
	s.buff = append(s.buff, "Connection: close\r\n"...)
	s.renderKnownHeader("Server: ", s.server)
	s.buff = strconv.AppendInt(append(s.buff, contentLength...), int64(len(fields.Body)), 10)
	s.crlf()

	for _, header := range fields.Headers {
		s.renderHeader(header)
	}

	if len(fields.ContentType) > 0 {
		s.renderKnownHeader(contentType, fields.ContentType)
	}

	s.crlf()
	s.buff = append(s.buff, fields.Body...)

	return s.buff
}

func (s *Serializer) renderResponseLine(fields *http.Fields) {
	s.buff = append(s.buff, "HTTP/1.1 "...)
	s.buff = strconv.AppendInt(s.buff, int64(fields.Code), 10)
	s.sp()

	reason := fields.Status
	if reason == "" {
		reason = status.Text(fields.Code)
	}

	s.buff = append(s.buff, reason...)
	s.crlf()
}

// renderHeader writes the header into the buffer. Appends CRLF in the end.
func (s *Serializer) renderHeader(header http.Header) {
	s.buff = append(s.buff, header.Key...)
	s.buff = append(s.buff, colonsp...)
	s.buff = append(s.buff, header.Value...)
	s.crlf()
}

func (s *Serializer) renderKnownHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}
