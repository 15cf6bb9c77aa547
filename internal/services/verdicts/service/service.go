// Package service renders verdicts through the text generator
package service

import (
	"context"
	"errors"
	"time"

	"juryduty/internal/adapters/llm"
	"juryduty/internal/core/dispute"
	"juryduty/internal/core/jury"
	"juryduty/internal/core/verdict"
	perr "juryduty/internal/platform/errors"
	"juryduty/internal/platform/logger"
	"juryduty/internal/services/verdicts/domain"
)

// Svc implements domain.GeneratorPort
type Svc struct {
	llm     llm.Completer
	timeout time.Duration
}

// New constructs the generator, timeout bounds one whole Generate call
func New(c llm.Completer, timeout time.Duration) *Svc {
	if c == nil {
		panic("verdicts.Service requires a non nil Completer")
	}
	return &Svc{llm: c, timeout: timeout}
}

// Generate builds the prompt for d, calls the model and parses its footer
func (s *Svc) Generate(ctx context.Context, d *dispute.Dispute) (domain.Outcome, error) {
	persona, known := jury.Lookup(d.JuryID)
	log := logger.C(ctx).With().Str("dispute_id", d.ID).Str("jury_id", persona.ID).Logger()
	if !known {
		log.Warn().Str("stored_jury_id", d.JuryID).Msg("unknown jury id, using default persona")
	}

	prompt, err := verdict.Build(persona, d)
	if err != nil {
		if errors.Is(err, verdict.ErrNotReady) {
			return domain.Outcome{}, perr.Wrap(err, perr.ErrorCodeConflict, "both sides must be submitted first")
		}
		return domain.Outcome{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.llm.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		log.Error().Err(err).Str("provider", s.llm.Name()).Msg("verdict generation failed")
		return domain.Outcome{}, perr.Wrap(err, perr.ErrorCodeUpstream, "the jury failed to deliver a verdict")
	}

	switch res := verdict.Parse(d.Kind(), raw).(type) {
	case verdict.Parsed:
		ev := log.Info()
		if res.WinnerDefaulted {
			ev = log.Warn()
		}
		ev.Str("winner", string(res.Winner)).
			Bool("winner_defaulted", res.WinnerDefaulted).
			Dur("took", time.Since(start)).
			Msg("verdict generated")
		return domain.Outcome{
			Verdict: dispute.Verdict{
				Text:    res.Narrative,
				Winner:  res.Winner,
				TeaserA: res.TeaserA,
				TeaserB: res.TeaserB,
			},
			WinnerDefaulted: res.WinnerDefaulted,
		}, nil
	case verdict.Unparseable:
		log.Error().Int("raw_len", len(res.Raw)).Msg("verdict had no narrative")
		return domain.Outcome{}, perr.Upstreamf("the jury returned an empty verdict")
	default:
		return domain.Outcome{}, perr.Internalf("unexpected parse result %T", res)
	}
}
