// Package service contains the vote ledger workflows
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	"juryduty/internal/core/dispute"
	"juryduty/internal/modkit/repokit"
	perr "juryduty/internal/platform/errors"
	"juryduty/internal/platform/logger"
	disputes "juryduty/internal/services/api/disputes/domain"
	"juryduty/internal/services/api/votes/cache"
	"juryduty/internal/services/api/votes/domain"
	"juryduty/internal/services/api/votes/repo"
)

// Service defines the votes service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the votes service
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	disputes disputes.ReaderPort
	tally    *cache.Tally
	salt     string
}

// New constructs a votes service, tally may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], reader disputes.ReaderPort, tally *cache.Tally, salt string) *Svc {
	if db == nil {
		panic("votes.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("votes.Service requires a non nil Repo binder")
	}
	if reader == nil {
		panic("votes.Service requires a dispute reader")
	}
	return &Svc{Repo: repokit.MustBind(binder, db), binder: binder, db: db, disputes: reader, tally: tally, salt: salt}
}

// VoterKey derives the stored key from a client address, nil for anonymous callers
func VoterKey(salt, client string) *string {
	if client == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(salt + client))
	k := hex.EncodeToString(sum[:])
	return &k
}

// Cast records one ballot per voter on a complete dispute
func (s *Svc) Cast(ctx context.Context, disputeID, client string, in domain.CastInput) (domain.CastResult, error) {
	if !dispute.Side(in.Choice).Votable() {
		return domain.CastResult{}, perr.WithField(perr.Validationf("choice must be person_a or person_b"), "choice")
	}
	key := VoterKey(s.salt, client)

	// the tally read in the same tx always includes this ballot
	var (
		ok bool
		t  repo.Tally
	)
	err := repokit.WithTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		var err error
		if ok, err = r.Insert(ctx, uuid.New(), disputeID, in.Choice, key); err != nil || !ok {
			return err
		}
		t, err = r.Tally(ctx, disputeID)
		return err
	})
	if err != nil {
		return domain.CastResult{}, err
	}
	if !ok {
		return domain.CastResult{}, s.refuse(ctx, disputeID)
	}

	// Put never lets this tally replace a larger one written by a later cast
	c := domain.NewCounts(t.PersonA, t.PersonB)
	s.tally.Put(ctx, disputeID, c)
	logger.C(ctx).Debug().Str("dispute_id", disputeID).Bool("anonymous", key == nil).Msg("vote cast")
	return domain.CastResult{Success: true, Counts: c}, nil
}

// refuse explains an insert that matched nothing
func (s *Svc) refuse(ctx context.Context, disputeID string) error {
	d, err := s.disputes.Find(ctx, disputeID)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		d, err = nil, nil
	}
	if err != nil {
		return err
	}
	switch dispute.VoteBlocker(d) {
	case dispute.ReasonNotFound:
		return perr.NotFoundf("dispute not found")
	case dispute.ReasonNotComplete:
		return perr.Validationf("%s", dispute.ReasonNotComplete)
	}
	c, err := s.Counts(ctx, disputeID)
	if err != nil {
		return err
	}
	return perr.WithDetails(perr.Conflictf("you have already voted on this dispute"),
		domain.AlreadyVoted{AlreadyVoted: true, Counts: c, Verdict: verdictView(d.Verdict)})
}

// Status reveals counts and verdict only to a caller who has voted
func (s *Svc) Status(ctx context.Context, disputeID, client string) (domain.StatusResult, error) {
	d, err := s.disputes.Find(ctx, disputeID)
	if perr.IsCode(err, perr.ErrorCodeNotFound) || (err == nil && d == nil) {
		return domain.StatusResult{}, perr.NotFoundf("dispute not found")
	}
	if err != nil {
		return domain.StatusResult{}, err
	}
	key := VoterKey(s.salt, client)
	if key == nil {
		return domain.StatusResult{}, nil
	}
	choice, voted, err := s.Repo.ChoiceOf(ctx, disputeID, *key)
	if err != nil || !voted {
		return domain.StatusResult{}, err
	}
	c, err := s.Counts(ctx, disputeID)
	if err != nil {
		return domain.StatusResult{}, err
	}
	return domain.StatusResult{Voted: true, YourChoice: &choice, Counts: &c, Verdict: verdictView(d.Verdict)}, nil
}

// Counts serves the tally from cache when it can
func (s *Svc) Counts(ctx context.Context, disputeID string) (domain.Counts, error) {
	if c, ok := s.tally.Get(ctx, disputeID); ok {
		return c, nil
	}
	return s.fresh(ctx, disputeID)
}

func (s *Svc) fresh(ctx context.Context, disputeID string) (domain.Counts, error) {
	t, err := s.Repo.Tally(ctx, disputeID)
	if err != nil {
		return domain.Counts{}, err
	}
	c := domain.NewCounts(t.PersonA, t.PersonB)
	s.tally.Put(ctx, disputeID, c)
	return c, nil
}

func verdictView(v *dispute.Verdict) *disputes.VerdictView {
	if v == nil {
		return nil
	}
	return &disputes.VerdictView{Text: v.Text, Winner: string(v.Winner), TeaserA: v.TeaserA, TeaserB: v.TeaserB}
}
