package method

type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD
	POST
	PUT
	DELETE
	OPTIONS
)

// Parse recognizes a method token. Tokens are matched case-sensitively, as
// the router upper-cases the request line token beforehand.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		if str == "GET" {
			return GET
		} else if str == "PUT" {
			return PUT
		}
	case 4:
		if str == "POST" {
			return POST
		} else if str == "HEAD" {
			return HEAD
		}
	case 6:
		if str == "DELETE" {
			return DELETE
		}
	case 7:
		if str == "OPTIONS" {
			return OPTIONS
		}
	}

	return Unknown
}

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case HEAD:
		return "HEAD"
	case POST:
		return "POST"
	case PUT:
		return "PUT"
	case DELETE:
		return "DELETE"
	case OPTIONS:
		return "OPTIONS"
	default:
		return "UNKNOWN"
	}
}
