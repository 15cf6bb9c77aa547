package repokit

import (
	"context"
	"fmt"
	"time"
)

// MustGuard runs a readiness check at startup and panics when it fails
// a context without a deadline gets five seconds
func MustGuard(ctx context.Context, name string, guard func(context.Context) error) {
	if guard == nil {
		panic(name + ": nil guard")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := guard(ctx); err != nil {
		panic(fmt.Errorf("%s guard failed: %w", name, err))
	}
}
