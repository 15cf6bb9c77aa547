package module

import (
	"context"
	"testing"

	"juryduty/internal/core/dispute"
	"juryduty/internal/modkit"
	"juryduty/internal/modkit/module"
	"juryduty/internal/modkit/repokit"
	"juryduty/internal/platform/config"
	"juryduty/internal/platform/logger"
	"juryduty/internal/platform/testkit"
	disputes "juryduty/internal/services/api/disputes/domain"
	"juryduty/internal/services/api/votes/domain"
)

type nopPG struct{ repokit.TxRunner }

type reader struct{}

func (reader) Find(context.Context, string) (*dispute.Dispute, error) { return nil, nil }

func deps() modkit.Deps {
	return modkit.Deps{Log: *logger.Get(), Cfg: config.New().Prefix("CORE_API_"), PG: nopPG{}}
}

func TestNewNeedsDisputeReader(t *testing.T) {
	testkit.MustPanic(t, func() { New(deps()) })
}

func TestModuleExportsLedger(t *testing.T) {
	m := New(deps(), modkit.WithPorts(struct{ Reader disputes.ReaderPort }{reader{}}))
	if m.Name() != "votes" {
		t.Fatalf("name = %q", m.Name())
	}
	if _, ok := module.PortsOf[domain.ServicePort](m); !ok {
		t.Fatalf("ledger port missing")
	}
}
