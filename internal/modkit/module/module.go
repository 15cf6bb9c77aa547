// Package module holds the module contract and port lookup
// it sits apart from modkit so port types can import it without a cycle
package module

import (
	phttp "juryduty/internal/platform/net/http"
)

// Module is the surface the API composes
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
