// Package module wires the feed into the API using modkit
package module

import (
	"net/http"

	"juryduty/internal/modkit"
	"juryduty/internal/modkit/httpkit"
	"juryduty/internal/modkit/repokit"
	feedhttp "juryduty/internal/services/api/feed/http"
	"juryduty/internal/services/api/feed/repo"
	"juryduty/internal/services/api/feed/service"
)

// Module implements the feed module
type Module struct {
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	svc      *service.Svc
	register func(httpkit.Router)
}

// New constructs the feed module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("feed"), modkit.WithPrefix("/feed")}, opts...)...)

	m := &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    service.New(repokit.TxRunner(deps.PG), repo.NewPG()),
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		feedhttp.Register(r, m.svc)
		external(r)
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.register)
}

// Ports returns the feed service
func (m *Module) Ports() any { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return m.name }
