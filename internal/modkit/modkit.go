package modkit

import (
	"juryduty/internal/modkit/module"
)

// Module is what the API composes: routes, ports and a name
type Module = module.Module

// Builder is the constructor shape every module exposes as New
type Builder func(Deps, ...Option) Module
