// Package module wires the vote ledger into the API using modkit
package module

import (
	"net/http"
	"time"

	"juryduty/internal/modkit"
	"juryduty/internal/modkit/httpkit"
	"juryduty/internal/modkit/module"
	"juryduty/internal/modkit/repokit"
	disputes "juryduty/internal/services/api/disputes/domain"
	"juryduty/internal/services/api/votes/cache"
	"juryduty/internal/services/api/votes/domain"
	voteshttp "juryduty/internal/services/api/votes/http"
	"juryduty/internal/services/api/votes/repo"
	"juryduty/internal/services/api/votes/service"
)

// Ports exposes tallies to other modules
type Ports struct {
	Service domain.ServicePort
}

// Module implements the votes module
type Module struct {
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)
}

// New constructs the votes module
// the disputes module's ports must be passed with WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("votes"), modkit.WithPrefix("/disputes/{id}/vote")}, opts...)...)

	reader, ok := module.Lookup[disputes.ReaderPort](b.Ports)
	if !ok {
		deps.Log.Panic().Str("module", b.Name).Msg("votes: dispute reader port missing")
	}

	salt := deps.Cfg.MayString("VOTES_KEY_SALT", "")
	if salt == "" {
		deps.Log.Warn().Msg("CORE_API_VOTES_KEY_SALT is empty, voter keys are plain address hashes")
	}
	var tally *cache.Tally
	if deps.RDS != nil {
		tally = cache.New(deps.RDS, deps.Cfg.MayDuration("VOTES_CACHE_TTL", 30*time.Second))
	}

	svc := service.New(repokit.TxRunner(deps.PG), repo.NewPG(), reader, tally, salt)
	m := &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Service: svc},
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		voteshttp.Register(r, svc)
		external(r)
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.register)
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.name }
