// Package modkit wires API modules from shared dependencies and options
package modkit

import (
	"juryduty/internal/modkit/repokit"
	"juryduty/internal/platform/config"
	"juryduty/internal/platform/logger"
	"juryduty/internal/platform/store"
)

// Deps is handed to every module constructor
// RDS is nil when no Redis URL is configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	RDS store.KV
}

// FromStore lifts an opened store into module deps
func FromStore(st *store.Store, cfg config.Conf) Deps {
	return Deps{Log: st.Log, Cfg: cfg, PG: st.PG, RDS: st.RDS}
}
