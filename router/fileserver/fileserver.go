package fileserver

import (
	"github.com/skiff-web/skiff/http"
	"github.com/skiff-web/skiff/http/method"
	"github.com/skiff-web/skiff/http/status"
	"github.com/skiff-web/skiff/internal/store"
)

const (
	welcomeMessage   = "skiff file server - upload files to /file-upload"
	statusMessage    = "Server is running normally"
	redirectLocation = "https://example.com/"
)

// Router serves the file-transfer routes over a single flat store:
//
//	GET     /             welcome message
//	GET     /redirect     302 with a fixed Location
//	GET     /status       running message
//	GET     /directory    listing of stored files
//	GET     /<name>       stored file content
//	POST    /file-upload  upload (multipart or raw body)
//	DELETE  /<name>       remove a stored file
//
// Anything else is a 405. The router performs no I/O besides delegating to
// the store.
type Router struct {
	store *store.Store
}

func New(st *store.Store) *Router {
	return &Router{store: st}
}

func (r *Router) OnRequest(req *http.Request) *http.Response {
	switch {
	case req.Method == method.POST && req.Path == "/file-upload":
		return r.upload(req)
	case req.Method == method.GET:
		return r.get(req)
	case req.Method == method.DELETE:
		return r.delete(req)
	default:
		return r.OnError(req, status.ErrMethodNotAllowed)
	}
}

func (r *Router) get(req *http.Request) *http.Response {
	switch req.Path {
	case "/":
		return http.NewResponse().String(welcomeMessage)
	case "/redirect":
		return http.NewResponse().
			Code(status.Found).
			Header("Location", redirectLocation)
	case "/status":
		return http.NewResponse().String(statusMessage)
	case "/directory":
		return r.directory(req)
	default:
		return r.serveFile(req)
	}
}

// OnError converts a typed failure into a response. Transport-level errors
// never reach this point; the engines close such connections silently.
func (r *Router) OnError(_ *http.Request, err error) *http.Response {
	return http.NewResponse().Error(err)
}
