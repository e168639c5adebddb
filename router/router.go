package router

import (
	"github.com/skiff-web/skiff/http"
)

// Router dispatches parsed requests to handlers. OnError converts any error
// raised on the way into a well-formed response; it is the single place
// deciding what a client sees on failure.
type Router interface {
	OnRequest(req *http.Request) *http.Response
	OnError(req *http.Request, err error) *http.Response
}
