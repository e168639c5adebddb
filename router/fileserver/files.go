package fileserver

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skiff-web/skiff/http"
	"github.com/skiff-web/skiff/http/mime"
	"github.com/skiff-web/skiff/http/status"
)

// serveFile treats the path after the leading slash as a stored filename.
// Upload-time sanitization is the only sanitization: requests are served
// by name as-is.
func (r *Router) serveFile(req *http.Request) *http.Response {
	name := strings.TrimPrefix(req.Path, "/")
	if name == "" {
		return notFound(name)
	}

	content, err := r.store.Read(name)
	switch err {
	case nil:
	case status.ErrNotFound:
		return notFound(name)
	default:
		return r.OnError(req, err)
	}

	contentType := mime.Extension[strings.ToLower(filepath.Ext(name))]
	if contentType == "" {
		contentType = mime.OctetStream
	}

	return http.NewResponse().
		ContentType(contentType).
		Bytes(content)
}

// directory lists every stored file with its size. Clients accepting JSON
// get a structured listing; everyone else gets plain text.
func (r *Router) directory(req *http.Request) *http.Response {
	entries, err := r.store.List()
	if err != nil {
		return r.OnError(req, err)
	}

	if strings.Contains(req.Headers.Value("accept"), mime.JSON) {
		return http.NewResponse().JSON(entries)
	}

	if len(entries) == 0 {
		return http.NewResponse().
			ContentType(mime.Plain).
			String("No files in directory")
	}

	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = fmt.Sprintf("%s (%d bytes)", entry.Name, entry.Size)
	}

	return http.NewResponse().
		ContentType(mime.Plain).
		String(strings.Join(lines, "\n"))
}

func (r *Router) delete(req *http.Request) *http.Response {
	name := strings.TrimPrefix(req.Path, "/")
	if name == "" {
		return notFound(name)
	}

	switch err := r.store.Remove(name); err {
	case nil:
	case status.ErrNotFound:
		return notFound(name)
	default:
		return r.OnError(req, err)
	}

	return http.NewResponse().
		String(fmt.Sprintf("File %s deleted successfully", name))
}

func notFound(name string) *http.Response {
	return http.NewResponse().
		Code(status.NotFound).
		String(fmt.Sprintf("File %s not found", name))
}
