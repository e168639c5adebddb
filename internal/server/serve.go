package server

import (
	"errors"
	"io"
	"log"
	"net"

	"github.com/skiff-web/skiff/http"
	"github.com/skiff-web/skiff/http/status"
	"github.com/skiff-web/skiff/internal/transport/http1"
	"github.com/skiff-web/skiff/router"
)

// ServeConn runs a single connection to completion: frame, parse, route,
// serialize, and unconditionally close. Both engines share this discipline.
//
// Transport failures (timeout, reset) terminate the connection with no
// response; the peer observes only the closure. Protocol failures are
// converted by the router into well-formed responses.
func ServeConn(conn net.Conn, r router.Router, ser *http1.Serializer, lim http1.Limits) {
	defer conn.Close()

	raw, err := http1.NewFramer(conn, lim).Frame()
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		// peer closed its write side; whatever arrived is still processed
	case errors.As(err, new(status.HTTPError)):
		_ = ser.Write(conn, r.OnError(http.NewRequest(conn.RemoteAddr()), err))
		return
	default:
		log.Printf("%s: dropping connection: %v", conn.RemoteAddr(), err)
		return
	}

	if len(raw) == 0 {
		return
	}

	req := http.NewRequest(conn.RemoteAddr())

	var resp *http.Response
	if err := http1.Parse(raw, req); err != nil {
		resp = r.OnError(req, err)
	} else {
		resp = r.OnRequest(req)
	}

	if err := ser.Write(conn, resp); err != nil {
		log.Printf("%s: writing response: %v", conn.RemoteAddr(), err)
	}
}
