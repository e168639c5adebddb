package http

import (
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"

	"github.com/skiff-web/skiff/http/mime"
	"github.com/skiff-web/skiff/http/status"
	"github.com/skiff-web/skiff/kv"
)

// Fields are the values collected by the Response builder. The serializer
// consumes them directly.
type Fields struct {
	Code status.Code
	// Status overrides the canonical reason phrase when non-empty.
	Status      status.Status
	ContentType mime.MIME
	Headers     []kv.Pair
	Body        []byte
}

func (f *Fields) Clear() {
	f.Code = status.OK
	f.Status = ""
	f.ContentType = ""
	f.Headers = f.Headers[:0]
	f.Body = nil
}

const preallocRespHeaders = 4

type Response struct {
	fields *Fields
}

// NewResponse returns a new instance of the Response object with status code
// set to 200 OK and pre-allocated space for response headers.
func NewResponse() *Response {
	return &Response{
		&Fields{
			Code:    status.OK,
			Headers: make([]kv.Pair, 0, preallocRespHeaders),
		},
	}
}

// Code sets a Response code and a corresponding status.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// Status sets a custom status text, overriding the canonical reason phrase.
func (r *Response) Status(s status.Status) *Response {
	r.fields.Status = s
	return r
}

// ContentType sets a custom Content-Type header value.
func (r *Response) ContentType(value mime.MIME) *Response {
	r.fields.ContentType = value
	return r
}

// Header appends an extra header to the response.
func (r *Response) Header(key, value string) *Response {
	r.fields.Headers = append(r.fields.Headers, kv.Pair{
		Key:   key,
		Value: value,
	})
	return r
}

// String sets the response's body to the passed string.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself.
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = body
	return r
}

// TryJSON marshals the model into the response body and sets the JSON
// content type.
func (r *Response) TryJSON(model any) (*Response, error) {
	body, err := json.ConfigDefault.Marshal(model)
	if err != nil {
		return r, err
	}

	return r.ContentType(mime.JSON).Bytes(body), nil
}

// JSON does the same as TryJSON does, except a marshalling failure is
// implicitly converted into a 500 via Error.
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error fills the response from an error value. status.HTTPError carries its
// own code; any other error is treated as an internal one.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	if http, ok := err.(status.HTTPError); ok {
		return r.Code(http.Code).String(http.Message)
	}

	return r.Code(status.InternalServerError).String(err.Error())
}

// Reveal returns a struct with values, filled by builder. Used mostly by the
// serializer.
func (r *Response) Reveal() *Fields {
	return r.fields
}

// Clear discards everything was done with Response object before.
func (r *Response) Clear() *Response {
	r.fields.Clear()
	return r
}
