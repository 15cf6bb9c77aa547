// Package module wires the verdict generator for the API
package module

import (
	"time"

	"juryduty/internal/adapters/llm"
	"juryduty/internal/modkit"
	"juryduty/internal/modkit/httpkit"
	"juryduty/internal/services/verdicts/domain"
	"juryduty/internal/services/verdicts/service"
)

// Ports exposed by the verdicts module
type Ports struct {
	Generator domain.GeneratorPort
}

// Module has no routes, other modules consume its Generator
type Module struct {
	name  string
	ports Ports
}

// New builds the generator from SERVICE_LLM_*
// WithPorts(llm.Completer) swaps the provider, tests use it
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("verdicts")}, opts...)...)

	o := llm.OptionsFromEnv()
	c, ok := b.Ports.(llm.Completer)
	if !ok {
		var err error
		if c, err = llm.New(o); err != nil {
			deps.Log.Panic().Err(err).Str("provider", o.Provider).Msg("verdicts: text generator unavailable")
		}
	}
	// the client retries inside this budget
	budget := o.Timeout*time.Duration(o.MaxRetries+1) + 10*time.Second
	deps.Log.Info().Str("provider", c.Name()).Dur("budget", budget).Msg("verdict generator ready")

	return &Module{name: b.Name, ports: Ports{Generator: service.New(c, budget)}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
