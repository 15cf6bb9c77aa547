package domain

import (
	"context"

	"juryduty/internal/core/dispute"
)

// ServicePort is the disputes use case surface
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (CreateResult, error)
	Get(ctx context.Context, id string) (View, error)
	Lock(ctx context.Context, id string, in LockInput) (LockResult, error)
	Respond(ctx context.Context, id string, in RespondInput) (RespondResult, error)
	Regenerate(ctx context.Context, id string, in RegenerateInput) (RegenerateResult, error)
	Next(ctx context.Context, exclude string) (NextResult, error)
}

// ReaderPort lets other modules load a dispute without its capabilities
// the returned copy has Token and Lease cleared
type ReaderPort interface {
	Find(ctx context.Context, id string) (*dispute.Dispute, error)
}
