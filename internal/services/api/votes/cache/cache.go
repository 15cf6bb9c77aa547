// Package cache keeps vote tallies in Redis for a short while
// entries are advisory, a miss or a Redis error falls back to Postgres
package cache

import (
	"context"
	"encoding/json"
	"time"

	"juryduty/internal/platform/logger"
	"juryduty/internal/platform/store"
	"juryduty/internal/services/api/votes/domain"
)

const keyPrefix = "votes:counts:"

// Tally caches Counts per dispute, a nil KV turns every call into a no-op
type Tally struct {
	kv  store.KV
	ttl time.Duration
	log logger.Logger
}

// New returns a tally cache over kv
func New(kv store.KV, ttl time.Duration) *Tally {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Tally{kv: kv, ttl: ttl, log: *logger.Named("votes.cache")}
}

// Key is the Redis key for a dispute
func Key(disputeID string) string { return keyPrefix + disputeID }

// Get returns cached counts, ok is false on a miss or when disabled
func (t *Tally) Get(ctx context.Context, disputeID string) (domain.Counts, bool) {
	if t == nil || t.kv == nil {
		return domain.Counts{}, false
	}
	raw, ver, ok, err := t.kv.GetVersion(ctx, Key(disputeID))
	if err != nil {
		t.log.Warn().Err(err).Str("dispute_id", disputeID).Msg("tally cache read failed")
		return domain.Counts{}, false
	}
	if !ok {
		return domain.Counts{}, false
	}
	var c domain.Counts
	if err := json.Unmarshal([]byte(raw), &c); err != nil || c.Total != c.PersonA+c.PersonB || int64(c.Total) != ver {
		t.Drop(ctx, disputeID)
		return domain.Counts{}, false
	}
	return c, true
}

// Put stores counts for the cache TTL
// ballots are never removed, so the total is the version and an older read cannot overwrite a newer one
func (t *Tally) Put(ctx context.Context, disputeID string, c domain.Counts) {
	if t == nil || t.kv == nil {
		return
	}
	b, _ := json.Marshal(c)
	written, err := t.kv.PutVersion(ctx, Key(disputeID), string(b), int64(c.Total), t.ttl)
	if err != nil {
		t.log.Warn().Err(err).Str("dispute_id", disputeID).Msg("tally cache write failed")
		return
	}
	if !written {
		t.log.Debug().Str("dispute_id", disputeID).Int("total", c.Total).Msg("stale tally not cached")
	}
}

// Drop invalidates a dispute's entry
func (t *Tally) Drop(ctx context.Context, disputeID string) {
	if t == nil || t.kv == nil {
		return
	}
	if err := t.kv.Del(ctx, Key(disputeID)); err != nil {
		t.log.Warn().Err(err).Str("dispute_id", disputeID).Msg("tally cache drop failed")
	}
}
