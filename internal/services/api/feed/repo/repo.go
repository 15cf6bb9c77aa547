// Package repo provides postgres access for the feed
package repo

import (
	"context"
	"time"

	"juryduty/internal/modkit/repokit"
	perr "juryduty/internal/platform/errors"
	"juryduty/internal/platform/store"
	str "juryduty/internal/platform/strings"
)

// Row is a completed dispute with its tally
type Row struct {
	ID          string
	Kind        string
	Topic       string
	PersonAName string
	PersonBName *string
	TeaserA     string
	TeaserB     string
	CompletedAt time.Time
	VotesA      int
	VotesB      int
}

// Repo is the read surface for the feed
type Repo interface {
	// List returns completed disputes, byVotes orders by total votes before recency
	List(ctx context.Context, byVotes bool, limit, offset int) ([]Row, error)
	CountCompleted(ctx context.Context) (int, error)
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

const (
	listNewest = `
select d.id, d.kind, d.topic, d.person_a_name, d.person_b_name, d.person_a_teaser, d.person_b_teaser, d.completed_at,
	count(v.id) filter (where v.choice = 'person_a')::int as votes_a,
	count(v.id) filter (where v.choice = 'person_b')::int as votes_b
from disputes d
left join votes v on v.dispute_id = d.id
where d.status = 'complete'
group by d.id
order by d.completed_at desc, d.id
limit $1 offset $2
`
	listMostVotes = `
select d.id, d.kind, d.topic, d.person_a_name, d.person_b_name, d.person_a_teaser, d.person_b_teaser, d.completed_at,
	count(v.id) filter (where v.choice = 'person_a')::int as votes_a,
	count(v.id) filter (where v.choice = 'person_b')::int as votes_b
from disputes d
left join votes v on v.dispute_id = d.id
where d.status = 'complete'
group by d.id
order by count(v.id) desc, d.completed_at desc, d.id
limit $1 offset $2
`
)

func (r *queries) List(ctx context.Context, byVotes bool, limit, offset int) ([]Row, error) {
	sql := listNewest
	if byVotes {
		sql = listMostVotes
	}
	rows, err := store.Many(ctx, r.q, scanRow, sql, limit, offset)
	if err != nil {
		return nil, perr.FromPostgres(err, "list feed")
	}
	return rows, nil
}

func (r *queries) CountCompleted(ctx context.Context) (int, error) {
	n, err := store.Scalar[int](ctx, r.q, `select count(*)::int from disputes where status = 'complete'`)
	if err != nil {
		return 0, perr.FromPostgres(err, "count feed")
	}
	return n, nil
}

func scanRow(row store.Row) (Row, error) {
	var (
		r                Row
		teaserA, teaserB *string
	)
	err := row.Scan(&r.ID, &r.Kind, &r.Topic, &r.PersonAName, &r.PersonBName, &teaserA, &teaserB, &r.CompletedAt, &r.VotesA, &r.VotesB)
	r.TeaserA, r.TeaserB = str.Deref(teaserA), str.Deref(teaserB)
	return r, err
}
