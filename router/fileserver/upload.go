package fileserver

import (
	"fmt"
	"strings"
	"time"

	"github.com/skiff-web/skiff/http"
	"github.com/skiff-web/skiff/http/status"
	"github.com/skiff-web/skiff/internal/formdata"
	"github.com/skiff-web/skiff/internal/store"
)

// upload stores the request payload as a file. Multipart bodies contribute
// their first file part; any other body is taken verbatim, with the filename
// derived from X-Upload-Filename, then Content-Disposition, then generated.
func (r *Router) upload(req *http.Request) *http.Response {
	var (
		filename string
		content  []byte
	)

	if strings.Contains(req.ContentType(), "multipart/form-data") {
		boundary, found := formdata.Boundary(req.ContentType())
		if !found {
			return r.OnError(req, status.ErrMissingBoundary)
		}

		filename, content, found = formdata.FirstFile(req.Body, boundary)
		if !found {
			return r.OnError(req, status.ErrNoFileInRequest)
		}
	} else {
		filename = r.rawUploadFilename(req)
		content = req.Body
	}

	safe := store.Sanitize(filename)
	if err := r.store.Save(safe, content); err != nil {
		return r.OnError(req, err)
	}

	return http.NewResponse().
		Code(status.Created).
		String(fmt.Sprintf("File %s uploaded successfully (%d bytes)", safe, len(content)))
}

func (r *Router) rawUploadFilename(req *http.Request) string {
	if name := req.Headers.Value("x-upload-filename"); name != "" {
		return name
	}

	if name, found := formdata.FilenameAttr(req.Headers.Value("content-disposition")); found {
		return name
	}

	return fmt.Sprintf("uploaded_file_%d", time.Now().Unix())
}
