// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "devsolutions/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Bare returns a response written without the envelope
func Bare(status int, body any) Response { return phttp.Bare(status, body) }

// Call adapts a handler returning (value, error); a returned Response is written as is
func Call(fn func(*http.Request) (any, error)) phttp.Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// HandleW adapts a Response-returning function that also needs the writer
func HandleW(fn func(http.ResponseWriter, *http.Request) Response) phttp.Handler {
	return phttp.HandleW(fn)
}

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) phttp.Handler {
	return phttp.Handle(fn)
}
