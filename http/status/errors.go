package status

// HTTPError is an error that maps directly onto a well-formed response. Every
// protocol-level failure a handler or the transport may report is one of the
// values below, so the router can always convert it without guessing.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrMalformedRequest = NewError(BadRequest, "malformed http request")
	ErrBadRequestLine   = NewError(BadRequest, "invalid http request line")
	ErrMissingBoundary  = NewError(BadRequest, "boundary not found in multipart request")
	ErrNoFileInRequest  = NewError(BadRequest, "no valid file found in request")
	ErrNotFound         = NewError(NotFound, "not found")
	ErrMethodNotAllowed = NewError(MethodNotAllowed, "http method not supported")
	ErrTooLargeRequest  = NewError(RequestEntityTooLarge, "request exceeds the size limit")
	ErrStorageFailure   = NewError(InternalServerError, "storage operation failed")
)
