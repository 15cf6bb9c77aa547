// Package httpkit is the HTTP surface modules build on
// handlers import it instead of the platform packages
package httpkit

import (
	"net/http"

	phttp "juryduty/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Handler is the platform handler shape
	Handler = phttp.Handler

	// Response lets a handler pick its own status
	Response = phttp.Response

	// Envelope is the JSON wrapper every response uses
	Envelope = phttp.Envelope
)

// OK is a 200 with data
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201 with data
func Created(data any) Response { return phttp.Created(data) }

// Error maps err onto its status
func Error(err error) Response { return phttp.Error(err) }

// Param reads a path parameter
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// Query reads a query string value
func Query(r *http.Request, key string) string { return r.URL.Query().Get(key) }

// Client returns the proxied client address, "" when unknown
func Client(r *http.Request) string { return phttp.ForwardedClient(r) }
