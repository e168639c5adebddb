package http

import (
	"net"
	"strconv"

	"github.com/skiff-web/skiff/http/method"
	"github.com/skiff-web/skiff/kv"
)

type (
	Headers = *kv.Storage
	Header  = kv.Pair
)

// Request represents a single parsed HTTP request. Header keys are stored
// lower-cased by the parser; duplicate header lines overwrite each other.
type Request struct {
	// Method is an enum representing the request method.
	Method method.Method
	// Path is the raw request path, including the leading slash.
	Path string
	// Proto is the protocol token from the request line, e.g. HTTP/1.1.
	Proto string
	// Headers holds the parsed header pairs. Lookup is case-insensitive.
	Headers Headers
	// Body is the payload following the header terminator. May be empty.
	Body []byte
	// Remote holds the remote address. Please note that this is generally not
	// a good parameter to identify a user, because there might be proxies in
	// the middle.
	Remote net.Addr
}

const preallocHeaders = 10

func NewRequest(remote net.Addr) *Request {
	return &Request{
		Method:  method.Unknown,
		Proto:   "HTTP/1.1",
		Headers: kv.NewPrealloc(preallocHeaders),
		Remote:  remote,
	}
}

// ContentLength reports the value of the Content-Length header, or zero if
// absent or unparseable.
func (r *Request) ContentLength() int {
	n, err := strconv.Atoi(r.Headers.Value("content-length"))
	if err != nil || n < 0 {
		return 0
	}

	return n
}

// ContentType obtains the Content-Type header value.
func (r *Request) ContentType() string {
	return r.Headers.Value("content-type")
}

// Reset the request, keeping allocated storage for re-use on the same
// connection.
func (r *Request) Reset() {
	r.Method = method.Unknown
	r.Path = ""
	r.Proto = "HTTP/1.1"
	r.Headers.Clear()
	r.Body = nil
}
