package domain

import "context"

// ServicePort is the vote ledger surface
// client is the caller's network address, "" when unknown
type ServicePort interface {
	Cast(ctx context.Context, disputeID, client string, in CastInput) (CastResult, error)
	Status(ctx context.Context, disputeID, client string) (StatusResult, error)
	Counts(ctx context.Context, disputeID string) (Counts, error)
}
