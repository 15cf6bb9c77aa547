// Package repo provides postgres access for votes
package repo

import (
	"context"

	"github.com/google/uuid"

	"juryduty/internal/modkit/repokit"
	perr "juryduty/internal/platform/errors"
	"juryduty/internal/platform/store"
)

// Tally is a raw count pair
type Tally struct {
	PersonA int
	PersonB int
}

// Repo is the persistence surface for votes
type Repo interface {
	// Insert records a ballot when the dispute is complete and the key has not voted
	// a nil key never conflicts
	Insert(ctx context.Context, id uuid.UUID, disputeID, choice string, voterKey *string) (bool, error)
	Tally(ctx context.Context, disputeID string) (Tally, error)
	ChoiceOf(ctx context.Context, disputeID, voterKey string) (string, bool, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, id uuid.UUID, disputeID, choice string, voterKey *string) (bool, error) {
	const sql = `
insert into votes (id, dispute_id, choice, voter_key)
select $1::uuid, d.id, $3::text, $4::text
from disputes d
where d.id = $2 and d.status = 'complete'
on conflict (dispute_id, voter_key) where voter_key is not null do nothing
returning id
`
	var got uuid.UUID
	err := r.q.QueryRow(ctx, sql, id, disputeID, choice, voterKey).Scan(&got)
	if store.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, perr.FromPostgres(err, "insert vote")
	}
	return true, nil
}

func (r *queries) Tally(ctx context.Context, disputeID string) (Tally, error) {
	const sql = `
select
	count(*) filter (where choice = 'person_a')::int,
	count(*) filter (where choice = 'person_b')::int
from votes
where dispute_id = $1
`
	var t Tally
	if err := r.q.QueryRow(ctx, sql, disputeID).Scan(&t.PersonA, &t.PersonB); err != nil {
		return Tally{}, perr.FromPostgres(err, "tally votes")
	}
	return t, nil
}

func (r *queries) ChoiceOf(ctx context.Context, disputeID, voterKey string) (string, bool, error) {
	const sql = `select choice from votes where dispute_id = $1 and voter_key = $2`
	choice, err := store.Scalar[string](ctx, r.q, sql, disputeID, voterKey)
	if store.IsNoRows(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, perr.FromPostgres(err, "read vote")
	}
	return choice, true, nil
}
