package status

type (
	Code   uint16
	Status string
)

// Status codes the server is able to produce. The list is intentionally
// narrower than the IANA registry.
const (
	OK      Code = 200
	Created Code = 201

	Found Code = 302

	BadRequest            Code = 400
	NotFound              Code = 404
	MethodNotAllowed      Code = 405
	RequestTimeout        Code = 408
	RequestEntityTooLarge Code = 413

	InternalServerError Code = 500
	ServiceUnavailable  Code = 503
)

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case Created:
		return "Created"
	case Found:
		return "Found"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case RequestTimeout:
		return "Request Timeout"
	case RequestEntityTooLarge:
		return "Request Entity Too Large"
	case InternalServerError:
		return "Internal Server Error"
	case ServiceUnavailable:
		return "Service Unavailable"
	default:
		return ""
	}
}
