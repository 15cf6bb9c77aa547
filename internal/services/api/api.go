// Package api provides the HTTP API for the application
package api

import (
	"time"

	"juryduty/internal/adapters/llm"
	"juryduty/internal/platform/config"
	"juryduty/internal/platform/logger"
	phttp "juryduty/internal/platform/net/http"
	"juryduty/internal/platform/store"

	"juryduty/internal/modkit"
	"juryduty/internal/modkit/httpkit"
	"juryduty/internal/modkit/module"
	"juryduty/internal/modkit/swaggerkit"

	disputesmod "juryduty/internal/services/api/disputes/module"
	feedmod "juryduty/internal/services/api/feed/module"
	metamod "juryduty/internal/services/api/meta/module"
	votesmod "juryduty/internal/services/api/votes/module"
	verdictsmod "juryduty/internal/services/verdicts/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	Timeout        time.Duration

	// Completer replaces the SERVICE_LLM_* provider when set
	Completer llm.Completer
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) []module.Module {
	deps := modkit.FromStore(opt.Store, opt.Config)
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	var vopts []modkit.Option
	if opt.Completer != nil {
		vopts = append(vopts, modkit.WithPorts(opt.Completer))
	}
	verdicts := verdictsmod.New(deps, vopts...)

	// disputes need the generator, votes need the dispute reader
	disputes := disputesmod.New(deps, modkit.WithPorts(verdicts.Ports()))
	votes := votesmod.New(deps, modkit.WithPorts(disputes.Ports()))

	mods := []module.Module{
		metamod.New(deps),
		verdicts,
		disputes,
		votes,
		feedmod.New(deps),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackOptions{CORSOrigins: opt.CORSOrigins, Timeout: opt.Timeout})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			deps.Log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
	return mods
}
