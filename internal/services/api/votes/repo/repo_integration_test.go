//go:build integration_pg

package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"juryduty/internal/platform/store"
	"juryduty/internal/platform/testkit/pgtest"
)

const seedDispute = `
insert into disputes (id, topic, person_a_name, person_a_argument, person_b_name, person_b_argument,
	jury_id, status, verdict_text, verdict_winner, challenge_token, completed_at)
values ($1, 'dishes', 'Ana', 'a', 'Bo', 'b', 'diana', $2, $3, $4, 'tok', $5)
`

func seed(t *testing.T, db store.RowQuerier) {
	t.Helper()
	ctx := context.Background()
	if _, err := db.Exec(ctx, seedDispute, "done", "complete", "Ana wins", "person_a", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("seed done: %v", err)
	}
	if _, err := db.Exec(ctx, seedDispute, "open", "pending", nil, nil, nil); err != nil {
		t.Fatalf("seed open: %v", err)
	}
}

func key(s string) *string { return &s }

func TestOneVotePerKeyUnderContention(t *testing.T) {
	st := pgtest.Open(t)
	seed(t, st.PG)
	r := NewPG().Bind(st.PG)

	var (
		mu  sync.Mutex
		won int
		wg  sync.WaitGroup
	)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			choice := "person_a"
			if i%2 == 1 {
				choice = "person_b"
			}
			ok, err := r.Insert(context.Background(), uuid.New(), "done", choice, key("voter-1"))
			if err != nil {
				t.Errorf("insert: %v", err)
			}
			if ok {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if won != 1 {
		t.Fatalf("%d ballots accepted for one voter", won)
	}
	tally, err := r.Tally(context.Background(), "done")
	if err != nil || tally.PersonA+tally.PersonB != 1 {
		t.Fatalf("tally = %+v %v", tally, err)
	}
}

func TestAnonymousBallotsAndOpenDisputes(t *testing.T) {
	st := pgtest.Open(t)
	seed(t, st.PG)
	r := NewPG().Bind(st.PG)
	ctx := context.Background()

	for range 3 {
		if ok, err := r.Insert(ctx, uuid.New(), "done", "person_b", nil); !ok || err != nil {
			t.Fatalf("anonymous ballot refused: %v", err)
		}
	}
	if ok, _ := r.Insert(ctx, uuid.New(), "open", "person_a", key("voter-2")); ok {
		t.Fatalf("ballot accepted on a pending dispute")
	}
	if ok, _ := r.Insert(ctx, uuid.New(), "missing", "person_a", key("voter-2")); ok {
		t.Fatalf("ballot accepted on a missing dispute")
	}
	if ok, err := r.Insert(ctx, uuid.New(), "done", "person_a", key("voter-2")); !ok || err != nil {
		t.Fatalf("keyed ballot refused: %v", err)
	}

	tally, err := r.Tally(ctx, "done")
	if err != nil || tally != (Tally{PersonA: 1, PersonB: 3}) {
		t.Fatalf("tally = %+v %v", tally, err)
	}
	choice, ok, err := r.ChoiceOf(ctx, "done", "voter-2")
	if err != nil || !ok || choice != "person_a" {
		t.Fatalf("choice = %q %v %v", choice, ok, err)
	}
	if _, ok, _ := r.ChoiceOf(ctx, "done", "nobody"); ok {
		t.Fatalf("unknown voter has a choice")
	}
}
