package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"juryduty/internal/core/dispute"
	"juryduty/internal/modkit/repokit"
	perr "juryduty/internal/platform/errors"
	"juryduty/internal/services/api/disputes/repo"
	verdicts "juryduty/internal/services/verdicts/domain"
)

// memRepo applies the same guards as the SQL statements under one mutex
type memRepo struct {
	mu   sync.Mutex
	now  time.Time
	rows map[string]*dispute.Dispute
}

func newMemRepo() *memRepo {
	return &memRepo{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), rows: map[string]*dispute.Dispute{}}
}

func (m *memRepo) advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func (m *memRepo) row(id string) *dispute.Dispute {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.rows[id]; ok {
		return clone(d)
	}
	return nil
}

func clone(d *dispute.Dispute) *dispute.Dispute {
	c := *d
	if tp, ok := d.Case.(dispute.TwoParty); ok && tp.Respondent != nil {
		p := *tp.Respondent
		c.Case = dispute.TwoParty{Respondent: &p}
	}
	if d.Verdict != nil {
		v := *d.Verdict
		c.Verdict = &v
	}
	if d.Lease != nil {
		l := *d.Lease
		c.Lease = &l
	}
	if d.CompletedAt != nil {
		t := *d.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func (m *memRepo) Insert(_ context.Context, d *dispute.Dispute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[d.ID]; ok {
		return perr.New(perr.ErrorCodeDuplicateKey, "insert dispute")
	}
	c := clone(d)
	c.CreatedAt = m.now
	m.rows[d.ID] = c
	return nil
}

func (m *memRepo) Get(_ context.Context, id string) (*dispute.Dispute, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, time.Time{}, perr.ErrNotFound
	}
	return clone(d), m.now, nil
}

func (m *memRepo) AcquireLock(_ context.Context, id, session string, ttl time.Duration) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.Kind() != dispute.KindDispute || d.Status != dispute.StatusPending || d.Answered() {
		return time.Time{}, false, nil
	}
	if d.Lease != nil && !d.Lease.ExpiresAt.Before(m.now) && d.Lease.Holder != session {
		return time.Time{}, false, nil
	}
	d.Lease = &dispute.Lease{Holder: session, ExpiresAt: m.now.Add(ttl)}
	return d.Lease.ExpiresAt, true, nil
}

func (m *memRepo) SubmitResponse(_ context.Context, id, token, session string, p dispute.Party) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.Token != token || d.Kind() != dispute.KindDispute || d.Status != dispute.StatusPending || d.Answered() {
		return false, nil
	}
	if d.Lease == nil || d.Lease.Holder != session || d.Lease.ExpiresAt.Before(m.now) {
		return false, nil
	}
	d.Case = dispute.TwoParty{Respondent: &p}
	d.Lease = nil
	return true, nil
}

func (m *memRepo) SaveVerdict(_ context.Context, id string, v dispute.Verdict) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || !d.ReadyForVerdict() {
		return false, nil
	}
	now := m.now
	d.Verdict, d.Status, d.CompletedAt = &v, dispute.StatusComplete, &now
	return true, nil
}

func (m *memRepo) NextCompleted(_ context.Context, exclude string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, d := range m.rows {
		if d.Complete() && id != exclude {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return "", false, nil
	}
	sort.Strings(ids)
	return ids[0], true, nil
}

type memBinder struct{ r *memRepo }

func (b memBinder) Bind(repokit.Queryer) repo.Repo { return b.r }

// nopDB satisfies the TxRunner check, the bound repo never touches it
type nopDB struct{ repokit.TxRunner }

// fakeGen numbers its verdicts so racing saves can be told apart
type fakeGen struct {
	calls atomic.Int32
	fail  atomic.Bool
	delay time.Duration
}

var errModelDown = perr.Upstreamf("the jury failed to deliver a verdict")

func (g *fakeGen) Generate(ctx context.Context, d *dispute.Dispute) (verdicts.Outcome, error) {
	n := g.calls.Add(1)
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	if g.fail.Load() {
		return verdicts.Outcome{}, errModelDown
	}
	if !d.ReadyForVerdict() {
		return verdicts.Outcome{}, errors.New("generator called too early")
	}
	return verdicts.Outcome{Verdict: dispute.Verdict{
		Text:    fmt.Sprintf("verdict number %d", n),
		Winner:  dispute.SideA,
		TeaserA: "kept the receipts",
	}}, nil
}

func newTestSvc() (*Svc, *memRepo, *fakeGen) {
	r := newMemRepo()
	g := &fakeGen{}
	s := New(nopDB{}, memBinder{r}, g, Options{LockTTL: 5 * time.Minute, AppURL: "https://jury.example/"})
	return s, r, g
}
