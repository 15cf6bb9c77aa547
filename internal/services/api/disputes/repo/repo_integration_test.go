//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"juryduty/internal/core/dispute"
	"juryduty/internal/platform/testkit/pgtest"
)

func seed(t *testing.T, r Repo, c dispute.Case) *dispute.Dispute {
	t.Helper()
	id, _ := dispute.NewID()
	tok, _ := dispute.NewToken()
	d := &dispute.Dispute{
		ID:        id,
		Topic:     "dishes",
		Initiator: dispute.Party{Name: "Ana", Argument: "I cooked"},
		Case:      c,
		JuryID:    "diana",
		Token:     tok,
	}
	if err := r.Insert(context.Background(), d); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return d
}

func TestLockIsExclusiveUnderContention(t *testing.T) {
	st := pgtest.Open(t)
	r := NewPG().Bind(st.PG)
	d := seed(t, r, dispute.TwoParty{})

	var won atomic.Int32
	var wg sync.WaitGroup
	for i := range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := r.AcquireLock(context.Background(), d.ID, fmt.Sprintf("s%d", i), time.Minute)
			if err != nil {
				t.Errorf("lock: %v", err)
			}
			if ok {
				won.Add(1)
			}
		}()
	}
	wg.Wait()
	if won.Load() != 1 {
		t.Fatalf("%d sessions hold the lock", won.Load())
	}
}

func TestExpiredLockCanBeTaken(t *testing.T) {
	st := pgtest.Open(t)
	r := NewPG().Bind(st.PG)
	ctx := context.Background()
	d := seed(t, r, dispute.TwoParty{})

	if _, ok, _ := r.AcquireLock(ctx, d.ID, "first", time.Millisecond); !ok {
		t.Fatalf("first lock refused")
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok, err := r.AcquireLock(ctx, d.ID, "second", time.Minute); !ok || err != nil {
		t.Fatalf("expired lock not taken: %v", err)
	}
	if ok, _ := r.SubmitResponse(ctx, d.ID, d.Token, "first", dispute.Party{Name: "Bo", Argument: "late"}); ok {
		t.Fatalf("stale holder submitted")
	}
}

func TestRespondThenVerdictOnce(t *testing.T) {
	st := pgtest.Open(t)
	r := NewPG().Bind(st.PG)
	ctx := context.Background()
	d := seed(t, r, dispute.TwoParty{})

	v := dispute.Verdict{Text: "Ana wins", Winner: dispute.SideA, TeaserA: "cooked", TeaserB: "ate"}
	if ok, _ := r.SaveVerdict(ctx, d.ID, v); ok {
		t.Fatalf("verdict saved before response")
	}
	if _, ok, _ := r.AcquireLock(ctx, d.ID, "s", time.Minute); !ok {
		t.Fatalf("lock refused")
	}
	if ok, _ := r.SubmitResponse(ctx, d.ID, "wrong", "s", dispute.Party{Name: "Bo", Argument: "b"}); ok {
		t.Fatalf("wrong token accepted")
	}
	if ok, err := r.SubmitResponse(ctx, d.ID, d.Token, "s", dispute.Party{Name: "Bo", Argument: "b"}); !ok || err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, ok, _ := r.AcquireLock(ctx, d.ID, "other", time.Minute); ok {
		t.Fatalf("answered dispute locked again")
	}

	if ok, err := r.SaveVerdict(ctx, d.ID, v); !ok || err != nil {
		t.Fatalf("save: %v", err)
	}
	if ok, _ := r.SaveVerdict(ctx, d.ID, dispute.Verdict{Text: "again", Winner: dispute.SideB}); ok {
		t.Fatalf("verdict overwritten")
	}

	got, _, err := r.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Complete() || got.Verdict.Text != "Ana wins" || got.CompletedAt == nil || got.Lease != nil {
		t.Fatalf("row = %+v", got)
	}
	tp, ok := got.Case.(dispute.TwoParty)
	if !ok || tp.Respondent == nil || tp.Respondent.Name != "Bo" {
		t.Fatalf("case = %+v", got.Case)
	}

	next, found, err := r.NextCompleted(ctx, "")
	if err != nil || !found || next != d.ID {
		t.Fatalf("next = %q %v %v", next, found, err)
	}
	if _, found, _ := r.NextCompleted(ctx, d.ID); found {
		t.Fatalf("excluded dispute returned")
	}
}

func TestSoloCannotBeLocked(t *testing.T) {
	st := pgtest.Open(t)
	r := NewPG().Bind(st.PG)
	d := seed(t, r, dispute.Solo{})
	if _, ok, _ := r.AcquireLock(context.Background(), d.ID, "s", time.Minute); ok {
		t.Fatalf("solo story locked")
	}
	got, _, err := r.Get(context.Background(), d.ID)
	if err != nil || got.Kind() != dispute.KindSolo {
		t.Fatalf("get = %+v %v", got, err)
	}
}
