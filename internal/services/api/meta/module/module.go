// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"juryduty/internal/core/version"
	"juryduty/internal/modkit"
	"juryduty/internal/modkit/httpkit"
	str "juryduty/internal/platform/strings"
	metahttp "juryduty/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	d := metahttp.Deps{ServiceName: version.Info().Service, StartedAt: m.startedAt}
	// typed nils would read as configured
	if p, ok := deps.PG.(metahttp.Pinger); ok && p != nil {
		d.PG = p
	}
	if deps.RDS != nil {
		d.RDS = deps.RDS
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, d)
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.name }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
