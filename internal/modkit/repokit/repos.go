// Package repokit is the SQL seam repos are written against
package repokit

import (
	"context"

	"juryduty/internal/platform/store"
)

type (
	// Queryer is what a bound repo runs statements on, a pool or a tx
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can open a transaction
	TxRunner = store.TxRunner

	// Row is a single result row
	Row = store.Row

	// Rows is a result set
	Rows = store.Rows

	// CommandTag reports what a write touched
	CommandTag = store.CommandTag
)

// WithTx binds b inside one transaction and runs fn with the bound repo
func WithTx[T any](ctx context.Context, db TxRunner, b Binder[T], fn func(T) error) error {
	return db.Tx(ctx, func(q Queryer) error { return fn(b.Bind(q)) })
}
