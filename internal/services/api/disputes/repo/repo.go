// Package repo provides postgres access for disputes
// every state change is a single conditional statement, a false ok means the guard did not match
package repo

import (
	"context"
	"time"

	"juryduty/internal/core/dispute"
	"juryduty/internal/modkit/repokit"
	perr "juryduty/internal/platform/errors"
	"juryduty/internal/platform/store"
	str "juryduty/internal/platform/strings"
	ptime "juryduty/internal/platform/time"
)

// Repo is the persistence surface for disputes
type Repo interface {
	Insert(ctx context.Context, d *dispute.Dispute) error
	// Get returns the row and the database clock it was read at
	Get(ctx context.Context, id string) (*dispute.Dispute, time.Time, error)
	AcquireLock(ctx context.Context, id, session string, ttl time.Duration) (time.Time, bool, error)
	SubmitResponse(ctx context.Context, id, token, session string, p dispute.Party) (bool, error)
	SaveVerdict(ctx context.Context, id string, v dispute.Verdict) (bool, error)
	NextCompleted(ctx context.Context, exclude string) (string, bool, error)
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

func (r *queries) Insert(ctx context.Context, d *dispute.Dispute) error {
	const sql = `
insert into disputes (id, kind, topic, person_a_name, person_a_argument, jury_id, status, challenge_token)
values ($1, $2, $3, $4, $5, $6, 'pending', $7)
`
	_, err := r.q.Exec(ctx, sql, d.ID, string(d.Kind()), d.Topic, d.Initiator.Name, d.Initiator.Argument, d.JuryID, d.Token)
	if err != nil {
		return perr.FromPostgres(err, "insert dispute")
	}
	return nil
}

func (r *queries) Get(ctx context.Context, id string) (*dispute.Dispute, time.Time, error) {
	const sql = `
select id, kind, topic, person_a_name, person_a_argument, person_b_name, person_b_argument,
	jury_id, status, verdict_text, verdict_winner, person_a_teaser, person_b_teaser,
	challenge_token, lock_holder, lock_expires_at, created_at, completed_at, now()
from disputes
where id = $1
`
	type read struct {
		d   *dispute.Dispute
		now time.Time
	}
	out, err := store.One(ctx, r.q, func(row store.Row) (read, error) {
		var rd read
		d, err := scanDispute(row, &rd.now)
		rd.d = d
		return rd, err
	}, sql, id)
	if err != nil {
		return nil, time.Time{}, err
	}
	return out.d, out.now, nil
}

func (r *queries) AcquireLock(ctx context.Context, id, session string, ttl time.Duration) (time.Time, bool, error) {
	// expired and re-entrant holders are overwritten in place
	const sql = `
update disputes
set lock_holder = $2, lock_expires_at = now() + make_interval(secs => $3)
where id = $1
and kind = 'dispute'
and status = 'pending'
and person_b_argument is null
and (lock_holder is null or lock_expires_at < now() or lock_holder = $2)
returning lock_expires_at
`
	var exp time.Time
	err := r.q.QueryRow(ctx, sql, id, session, ttl.Seconds()).Scan(&exp)
	if store.IsNoRows(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, perr.FromPostgres(err, "acquire lock")
	}
	return exp, true, nil
}

func (r *queries) SubmitResponse(ctx context.Context, id, token, session string, p dispute.Party) (bool, error) {
	const sql = `
update disputes
set person_b_name = $4, person_b_argument = $5, lock_holder = null, lock_expires_at = null
where id = $1
and challenge_token = $2
and kind = 'dispute'
and status = 'pending'
and person_b_argument is null
and lock_holder = $3
and lock_expires_at >= now()
`
	tag, err := r.q.Exec(ctx, sql, id, token, session, p.Name, p.Argument)
	if err != nil {
		return false, perr.FromPostgres(err, "submit response")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) SaveVerdict(ctx context.Context, id string, v dispute.Verdict) (bool, error) {
	const sql = `
update disputes
set verdict_text = $2, verdict_winner = $3, person_a_teaser = $4, person_b_teaser = $5,
	status = 'complete', completed_at = now()
where id = $1
and status = 'pending'
and (kind = 'solo' or person_b_argument is not null)
`
	tag, err := r.q.Exec(ctx, sql, id, v.Text, string(v.Winner), str.SQLNull(v.TeaserA), str.SQLNull(v.TeaserB))
	if err != nil {
		return false, perr.FromPostgres(err, "save verdict")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) NextCompleted(ctx context.Context, exclude string) (string, bool, error) {
	const sql = `
select id from disputes
where status = 'complete' and id <> $1
order by random()
limit 1
`
	id, err := store.Scalar[string](ctx, r.q, sql, exclude)
	if store.IsNoRows(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, perr.FromPostgres(err, "next dispute")
	}
	return id, true, nil
}

// scanDispute maps the nullable columns onto the kind variant
func scanDispute(row store.Row, extra ...any) (*dispute.Dispute, error) {
	var (
		d                        dispute.Dispute
		kind, status             string
		bName, bArg, vText, vWin *string
		teaserA, teaserB, holder *string
		lockExp, completedAt     *time.Time
	)
	dest := []any{
		&d.ID, &kind, &d.Topic, &d.Initiator.Name, &d.Initiator.Argument, &bName, &bArg,
		&d.JuryID, &status, &vText, &vWin, &teaserA, &teaserB,
		&d.Token, &holder, &lockExp, &d.CreatedAt, &completedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	k, _ := dispute.ParseKind(kind)
	switch k {
	case dispute.KindSolo:
		d.Case = dispute.Solo{}
	default:
		tp := dispute.TwoParty{}
		if bArg != nil {
			tp.Respondent = &dispute.Party{Name: str.Deref(bName), Argument: *bArg}
		}
		d.Case = tp
	}
	d.Status = dispute.Status(status)
	if vText != nil {
		d.Verdict = &dispute.Verdict{
			Text:    *vText,
			Winner:  dispute.Side(str.Deref(vWin)),
			TeaserA: str.Deref(teaserA),
			TeaserB: str.Deref(teaserB),
		}
	}
	if holder != nil && lockExp != nil {
		d.Lease = &dispute.Lease{Holder: *holder, ExpiresAt: *lockExp}
	}
	d.CreatedAt = d.CreatedAt.UTC()
	d.CompletedAt = ptime.UTCPtr(completedAt)
	return &d, nil
}
