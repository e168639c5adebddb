package formdata

import (
	"bytes"
	"regexp"
)

var (
	boundaryRegex = regexp.MustCompile(`boundary=([^;]+)`)
	filenameRegex = regexp.MustCompile(`filename="([^"]*)"`)
)

// Boundary extracts the boundary parameter from a multipart Content-Type
// header value.
func Boundary(contentType string) (boundary string, found bool) {
	match := boundaryRegex.FindStringSubmatch(contentType)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// FilenameAttr extracts the filename attribute of a Content-Disposition
// header value, matched literally between quotes.
func FilenameAttr(contentDisposition string) (filename string, found bool) {
	match := filenameRegex.FindStringSubmatch(contentDisposition)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// FirstFile isolates the first file part of a multipart body: the first part
// carrying both a Content-Disposition header and a filename="..." attribute.
// Additional files in the same request are silently ignored. The returned
// filename may still contain directory components; sanitizing it is the
// caller's duty.
func FirstFile(body []byte, boundary string) (filename string, content []byte, found bool) {
	for _, part := range bytes.Split(body, []byte("--"+boundary)) {
		if !bytes.Contains(part, []byte("Content-Disposition")) {
			continue
		}

		match := filenameRegex.FindSubmatch(part)
		if match == nil {
			continue
		}

		start := bytes.Index(part, []byte("\r\n\r\n"))
		if start == -1 {
			continue
		}

		content = part[start+4:]
		// the part content is framed by a CRLF belonging to the boundary line
		content = bytes.TrimSuffix(content, []byte("\r\n"))

		return string(match[1]), content, true
	}

	return "", nil, false
}
