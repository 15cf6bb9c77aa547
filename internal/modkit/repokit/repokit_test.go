package repokit

import (
	"context"
	"errors"
	"testing"

	"juryduty/internal/platform/testkit"
)

type fakeTx struct {
	Queryer
	began bool
}

func (f *fakeTx) Tx(_ context.Context, fn func(Queryer) error) error {
	f.began = true
	return fn(f)
}

func TestBindFuncAndMustBind(t *testing.T) {
	b := BindFunc[string](func(Queryer) string { return "bound" })
	if MustBind[string](b, &fakeTx{}) != "bound" {
		t.Fatalf("bind mismatch")
	}
	testkit.MustPanic(t, func() { MustBind[string](b, nil) })
}

func TestWithTxBindsInsideTransaction(t *testing.T) {
	db := &fakeTx{}
	var got Queryer
	b := BindFunc[Queryer](func(q Queryer) Queryer { return q })
	err := WithTx(context.Background(), db, b, func(q Queryer) error {
		got = q
		return errors.New("rollback")
	})
	if err == nil || !db.began || got != Queryer(db) {
		t.Fatalf("err=%v began=%v", err, db.began)
	}
}

func TestMustGuard(t *testing.T) {
	testkit.MustNotPanic(t, func() {
		MustGuard(context.Background(), "pg", func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				return errors.New("no deadline")
			}
			return nil
		})
	})
	testkit.MustPanic(t, func() {
		MustGuard(context.Background(), "pg", func(context.Context) error { return errors.New("down") })
	})
}
