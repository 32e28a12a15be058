// Package httpkit is what modules import for routing, handlers and auth, so
// they do not reach into internal/platform/net/http themselves
package httpkit

import (
	"net/http"

	phttp "botdesk/internal/platform/net/http"
)

type (
	Router   = phttp.Router
	Handler  = phttp.Handler
	Envelope = phttp.Envelope
	Response = phttp.Response
	Page     = phttp.Page
)

func OK(data any) Response      { return phttp.OK(data) }
func Created(data any) Response { return phttp.Created(data) }
func NoContent() Response       { return phttp.NoContent() }

// PathID reads a positive integer path parameter such as {id}
func PathID(r *http.Request, name string) (int64, error) { return phttp.PathID(r, name) }

// QueryID reads an optional positive integer query parameter
func QueryID(r *http.Request, name string) (int64, bool, error) { return phttp.QueryID(r, name) }

// Get mounts a body-less handler
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, phttp.Call(h)) }

// Delete mounts a body-less handler; return NoContent() for a 204
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.Call(h))
}

// PostJSON mounts a handler whose body is bound and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.JSONHandler(h))
}

func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Patch(path, phttp.JSONHandler(h))
}
