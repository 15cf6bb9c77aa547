package httpkit

import (
	"net/http"

	phttp "juryduty/internal/platform/net/http"
)

// Get mounts a body-less handler on GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// PostJSON binds and validates T then mounts h on POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PutJSON binds and validates T then mounts h on PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PutJSON(r, path, h)
}
