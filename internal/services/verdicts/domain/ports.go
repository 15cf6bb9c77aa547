// Package domain declares the verdict generator port
package domain

import (
	"context"

	"juryduty/internal/core/dispute"
)

// Outcome is a generated verdict ready to save
type Outcome struct {
	Verdict dispute.Verdict
	// WinnerDefaulted is set when the model gave no usable WINNER line
	WinnerDefaulted bool
}

// GeneratorPort writes a verdict for a dispute that has every argument it needs
// it never touches the store
type GeneratorPort interface {
	Generate(ctx context.Context, d *dispute.Dispute) (Outcome, error)
}
