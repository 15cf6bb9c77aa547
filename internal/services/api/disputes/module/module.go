// Package module wires disputes into the API using modkit
package module

import (
	"net/http"
	"time"

	"juryduty/internal/modkit"
	"juryduty/internal/modkit/httpkit"
	"juryduty/internal/modkit/module"
	"juryduty/internal/modkit/repokit"
	str "juryduty/internal/platform/strings"
	"juryduty/internal/services/api/disputes/domain"
	disputeshttp "juryduty/internal/services/api/disputes/http"
	"juryduty/internal/services/api/disputes/repo"
	"juryduty/internal/services/api/disputes/service"
	verdicts "juryduty/internal/services/verdicts/domain"
)

// Ports exposes the read side for the votes module
type Ports struct {
	Reader domain.ReaderPort
}

// Module implements the disputes module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	svc *service.Svc
}

// New constructs the disputes module
// the verdicts module's ports must be passed with WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("disputes"), modkit.WithPrefix("/disputes")}, opts...)...)

	gen, ok := module.Lookup[verdicts.GeneratorPort](b.Ports)
	if !ok {
		deps.Log.Panic().Str("module", b.Name).Msg("disputes: verdict generator port missing")
	}

	o := service.Options{
		LockTTL: deps.Cfg.MayDuration("DISPUTES_LOCK_TTL", 5*time.Minute),
		AppURL:  deps.Cfg.MayString("APP_URL", "http://localhost:3000"),
	}
	svc := service.New(repokit.TxRunner(deps.PG), repo.NewPG(), gen, o)
	deps.Log.Debug().Dur("lock_ttl", o.LockTTL).Str("app_url", o.AppURL).Msg("disputes module ready")

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Reader: svc},
		svc:    svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		disputeshttp.Register(r, m.svc)
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

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
