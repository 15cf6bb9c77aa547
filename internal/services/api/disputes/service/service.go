// Package service contains the dispute lifecycle workflows
package service

import (
	"context"
	"crypto/subtle"
	"net/url"
	"strings"
	"time"

	"juryduty/internal/core/dispute"
	"juryduty/internal/core/jury"
	"juryduty/internal/modkit/repokit"
	perr "juryduty/internal/platform/errors"
	"juryduty/internal/platform/logger"
	"juryduty/internal/services/api/disputes/domain"
	"juryduty/internal/services/api/disputes/repo"
	verdicts "juryduty/internal/services/verdicts/domain"
)

// Service defines the disputes service contract
type Service interface {
	domain.ServicePort
	domain.ReaderPort
}

// Options tunes the lifecycle
type Options struct {
	// LockTTL is how long a respondent holds the slot without refreshing
	LockTTL time.Duration
	// AppURL is the public site root used to build links
	AppURL string
}

const (
	defaultLockTTL = 5 * time.Minute
	defaultAppURL  = "http://localhost:3000"
	insertAttempts = 3
)

var errInvalidLink = perr.NotFoundf("invalid challenge link")

// newID is swapped in tests
var newID = dispute.NewID

// Svc implements the disputes service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	gen    verdicts.GeneratorPort
	opts   Options
}

// New constructs a disputes service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], gen verdicts.GeneratorPort, o Options) *Svc {
	if db == nil {
		panic("disputes.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("disputes.Service requires a non nil Repo binder")
	}
	if gen == nil {
		panic("disputes.Service requires a verdict generator")
	}
	if o.LockTTL <= 0 {
		o.LockTTL = defaultLockTTL
	}
	if o.AppURL == "" {
		o.AppURL = defaultAppURL
	}
	o.AppURL = strings.TrimRight(o.AppURL, "/")
	return &Svc{Repo: repokit.MustBind(binder, db), binder: binder, db: db, gen: gen, opts: o}
}

// Create stores a new dispute, solo disputes are judged straight away
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.CreateResult, error) {
	kind, ok := dispute.ParseKind(in.Kind)
	if !ok {
		return domain.CreateResult{}, perr.WithField(perr.Validationf("kind must be dispute or solo"), "kind")
	}
	topic, err := dispute.CleanTopic(in.Topic)
	if err != nil {
		return domain.CreateResult{}, err
	}
	initiator, err := dispute.CleanParty("", dispute.Party{Name: in.Name, Argument: in.Argument}, dispute.MaxArgumentFor(kind))
	if err != nil {
		return domain.CreateResult{}, err
	}
	token, err := dispute.NewToken()
	if err != nil {
		return domain.CreateResult{}, perr.Wrap(err, perr.ErrorCodeUnknown, "generate token")
	}

	d := &dispute.Dispute{
		Topic:     topic,
		Initiator: initiator,
		Case:      dispute.CaseFor(kind),
		JuryID:    jury.Random().ID,
		Status:    dispute.StatusPending,
		Token:     token,
	}
	if err := s.insert(ctx, d); err != nil {
		return domain.CreateResult{}, err
	}

	log := logger.C(ctx).With().Str("dispute_id", d.ID).Str("kind", string(kind)).Logger()
	log.Info().Str("jury_id", d.JuryID).Msg("dispute created")

	res := domain.CreateResult{
		DisputeID: d.ID,
		Kind:      string(kind),
		PublicURL: s.publicURL(d.ID),
		Status:    string(dispute.StatusPending),
	}
	if kind == dispute.KindDispute {
		res.ChallengeURL = s.challengeURL(d.ID, token)
		return res, nil
	}

	res.RetryToken = token
	done, err := s.conclude(ctx, d.ID)
	if err != nil {
		log.Error().Err(err).Msg("solo verdict failed, story kept")
		return domain.CreateResult{}, perr.WithDetails(
			perr.Wrap(err, perr.ErrorCodeUpstream, "your story was saved but the jury failed to deliver a verdict"),
			domain.Saved{DisputeID: d.ID, ResponseSaved: true, RetryToken: token},
		)
	}
	res.Status = string(done.Status)
	return res, nil
}

// insert retries on the unlikely id collision
func (s *Svc) insert(ctx context.Context, d *dispute.Dispute) error {
	var err error
	for range insertAttempts {
		if d.ID, err = newID(); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "generate id")
		}
		if err = s.Repo.Insert(ctx, d); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
			return err
		}
	}
	return err
}

// Get returns the public view of a dispute
func (s *Svc) Get(ctx context.Context, id string) (domain.View, error) {
	d, _, err := s.load(ctx, id)
	if err != nil {
		return domain.View{}, err
	}
	if d == nil {
		return domain.View{}, perr.NotFoundf("dispute not found")
	}
	return view(d), nil
}

// Find implements domain.ReaderPort
func (s *Svc) Find(ctx context.Context, id string) (*dispute.Dispute, error) {
	d, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, perr.NotFoundf("dispute not found")
	}
	d.Token, d.Lease = "", nil
	return d, nil
}

// Lock grants or refreshes the response slot for in.SessionID
func (s *Svc) Lock(ctx context.Context, id string, in domain.LockInput) (domain.LockResult, error) {
	ctx = logger.WithSession(ctx, in.SessionID)
	if _, err := s.authorize(ctx, id, in.Token); err != nil {
		return domain.LockResult{}, err
	}

	// a second pass covers a lease that expired between the update and the read
	for range 2 {
		exp, ok, err := s.Repo.AcquireLock(ctx, id, in.SessionID, s.opts.LockTTL)
		if err != nil {
			return domain.LockResult{}, err
		}
		if ok {
			logger.C(ctx).Debug().Str("dispute_id", id).Time("expires_at", exp).Msg("challenge lock held")
			return domain.LockResult{Acquired: true, ExpiresAt: exp}, nil
		}
		d, now, err := s.load(ctx, id)
		if err != nil {
			return domain.LockResult{}, err
		}
		if r := dispute.LockBlocker(d, in.SessionID, now); r != dispute.ReasonNone {
			return domain.LockResult{}, refusal(r)
		}
	}
	return domain.LockResult{}, refusal(dispute.ReasonBusy)
}

// Respond saves the second side then asks the jury
// the response is kept even when generation fails
func (s *Svc) Respond(ctx context.Context, id string, in domain.RespondInput) (domain.RespondResult, error) {
	ctx = logger.WithSession(ctx, in.SessionID)
	p, err := dispute.CleanParty("", dispute.Party{Name: in.Name, Argument: in.Argument}, dispute.MaxArgument)
	if err != nil {
		return domain.RespondResult{}, err
	}

	ok, err := s.Repo.SubmitResponse(ctx, id, in.Token, in.SessionID, p)
	if err != nil {
		return domain.RespondResult{}, err
	}
	if !ok {
		d, now, err := s.load(ctx, id)
		if err != nil {
			return domain.RespondResult{}, err
		}
		if d == nil || !sameToken(d.Token, in.Token) {
			return domain.RespondResult{}, errInvalidLink
		}
		r := dispute.SubmitBlocker(d, in.SessionID, now)
		if r == dispute.ReasonNone {
			r = dispute.ReasonLeaseLost
		}
		return domain.RespondResult{}, refusal(r)
	}

	log := logger.C(ctx).With().Str("dispute_id", id).Logger()
	log.Info().Msg("response saved")

	if _, err := s.conclude(ctx, id); err != nil {
		log.Error().Err(err).Msg("verdict failed after response")
		return domain.RespondResult{}, perr.WithDetails(
			perr.Wrap(err, perr.ErrorCodeUpstream, "your response was saved but the jury failed to deliver a verdict"),
			domain.Saved{DisputeID: id, ResponseSaved: true},
		)
	}
	return domain.RespondResult{Success: true, VerdictGenerated: true, RedirectURL: "/dispute/" + id}, nil
}

// Regenerate retries generation for a pending dispute that has every argument
// a complete dispute returns its stored verdict unchanged
func (s *Svc) Regenerate(ctx context.Context, id string, in domain.RegenerateInput) (domain.RegenerateResult, error) {
	d, err := s.authorize(ctx, id, in.Token)
	if err != nil {
		return domain.RegenerateResult{}, err
	}
	if !d.Complete() {
		if d, err = s.conclude(ctx, id); err != nil {
			return domain.RegenerateResult{}, err
		}
	}
	return domain.RegenerateResult{
		DisputeID: d.ID,
		Status:    string(d.Status),
		Verdict:   verdictView(d.Verdict),
	}, nil
}

// Next picks a random completed dispute other than exclude
func (s *Svc) Next(ctx context.Context, exclude string) (domain.NextResult, error) {
	id, ok, err := s.Repo.NextCompleted(ctx, exclude)
	if err != nil || !ok {
		return domain.NextResult{}, err
	}
	return domain.NextResult{ID: &id}, nil
}

// conclude generates and saves the verdict for id
// when another caller saved first their verdict is returned
func (s *Svc) conclude(ctx context.Context, id string) (*dispute.Dispute, error) {
	d, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case d == nil:
		return nil, perr.NotFoundf("dispute not found")
	case d.Complete():
		return d, nil
	case !d.ReadyForVerdict():
		return nil, perr.WithDetails(perr.Conflictf("both sides must be submitted first"),
			domain.Refusal{Reason: "awaiting response"})
	}

	out, err := s.gen.Generate(ctx, d)
	if err != nil {
		return nil, err
	}
	saved, err := s.Repo.SaveVerdict(ctx, id, out.Verdict)
	if err != nil {
		return nil, err
	}
	if !saved {
		// lost the race, whatever is stored now is final
		cur, _, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if cur != nil && cur.Complete() {
			logger.C(ctx).Info().Str("dispute_id", id).Msg("verdict already saved by another request")
			return cur, nil
		}
		return nil, perr.Conflictf("verdict could not be saved")
	}
	d.Status = dispute.StatusComplete
	d.Verdict = &out.Verdict
	return d, nil
}

// load maps a missing row to a nil dispute
func (s *Svc) load(ctx context.Context, id string) (*dispute.Dispute, time.Time, error) {
	d, now, err := s.Repo.Get(ctx, id)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return nil, time.Now(), nil
	}
	return d, now, err
}

// authorize loads id and checks the challenge token
func (s *Svc) authorize(ctx context.Context, id, token string) (*dispute.Dispute, error) {
	d, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || !sameToken(d.Token, token) {
		return nil, errInvalidLink
	}
	return d, nil
}

func sameToken(stored, given string) bool {
	return stored != "" && subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func refusal(r dispute.Reason) error {
	switch r {
	case dispute.ReasonNotFound:
		return errInvalidLink
	case dispute.ReasonBusy:
		return perr.WithDetails(perr.Lockedf("%s", r), domain.Refusal{Locked: true, Reason: string(r)})
	case dispute.ReasonCompleted:
		return perr.WithDetails(perr.Conflictf("this dispute has already been completed"), domain.Refusal{Reason: string(r)})
	case dispute.ReasonAnswered:
		return perr.WithDetails(perr.Conflictf("this dispute has already been answered"), domain.Refusal{Reason: string(r)})
	}
	return perr.WithDetails(perr.Conflictf("%s", r), domain.Refusal{Reason: string(r)})
}

func (s *Svc) publicURL(id string) string {
	return s.opts.AppURL + "/dispute/" + url.PathEscape(id)
}

func (s *Svc) challengeURL(id, token string) string {
	return s.publicURL(id) + "/challenge?token=" + url.QueryEscape(token)
}

// view hides both arguments until the verdict is in
func view(d *dispute.Dispute) domain.View {
	p, _ := jury.Lookup(d.JuryID)
	v := domain.View{
		ID:          d.ID,
		Kind:        string(d.Kind()),
		Topic:       d.Topic,
		PersonA:     domain.PartyView{Name: d.Initiator.Name},
		Jury:        domain.JuryView{ID: p.ID, Name: p.Name, Bio: p.Bio, Portrait: p.Portrait},
		Status:      string(d.Status),
		Verdict:     verdictView(d.Verdict),
		CreatedAt:   d.CreatedAt,
		CompletedAt: d.CompletedAt,
	}
	if b := d.Respondent(); b != nil {
		v.PersonB = &domain.PartyView{Name: b.Name}
	}
	if d.Complete() {
		v.PersonA.Argument = d.Initiator.Argument
		if v.PersonB != nil {
			v.PersonB.Argument = d.Respondent().Argument
		}
	}
	return v
}

func verdictView(v *dispute.Verdict) *domain.VerdictView {
	if v == nil {
		return nil
	}
	return &domain.VerdictView{Text: v.Text, Winner: string(v.Winner), TeaserA: v.TeaserA, TeaserB: v.TeaserB}
}
