// Package dispute models a dispute, its two kinds and the lifecycle rules
// that decide who may respond, when a verdict may be generated and when votes count
package dispute

import (
	"time"
)

// Kind tells a two party dispute apart from a solo self report
type Kind string

const (
	// KindDispute has an initiator and a respondent
	KindDispute Kind = "dispute"
	// KindSolo is judged from the initiator's account alone
	KindSolo Kind = "solo"
)

// ParseKind maps the wire value, "" means KindDispute
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case "", KindDispute:
		return KindDispute, true
	case KindSolo:
		return KindSolo, true
	}
	return "", false
}

// Side names a party in verdicts and votes
type Side string

const (
	SideA       Side = "person_a"
	SideB       Side = "person_b"
	SideNeutral Side = "neutral"
)

// Votable reports whether s may be chosen on a ballot
func (s Side) Votable() bool { return s == SideA || s == SideB }

// Status is the lifecycle state
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"

	// reserved by the schema, nothing produces them
	StatusIncomplete Status = "incomplete"
	StatusReported   Status = "reported"
)

// Party is one side's name and argument
type Party struct {
	Name     string
	Argument string
}

// Case is the kind specific half of a dispute
// TwoParty and Solo are the only implementations
type Case interface {
	Kind() Kind
	isCase()
}

// TwoParty waits for a respondent, Respondent stays nil until answered
type TwoParty struct {
	Respondent *Party
}

// Kind implements Case
func (TwoParty) Kind() Kind { return KindDispute }
func (TwoParty) isCase()    {}

// Solo has no respondent at all
type Solo struct{}

// Kind implements Case
func (Solo) Kind() Kind { return KindSolo }
func (Solo) isCase()    {}

// CaseFor returns the empty case for k
func CaseFor(k Kind) Case {
	if k == KindSolo {
		return Solo{}
	}
	return TwoParty{}
}

// Verdict is the stored outcome of generation
type Verdict struct {
	Text    string
	Winner  Side
	TeaserA string
	TeaserB string
}

// Lease is the response slot currently held by a session
type Lease struct {
	Holder    string
	ExpiresAt time.Time
}

// Active reports whether the lease still blocks other sessions at now
func (l *Lease) Active(now time.Time) bool {
	return l != nil && l.Holder != "" && !l.ExpiresAt.Before(now)
}

// Dispute is a transient copy of the stored row
type Dispute struct {
	ID          string
	Topic       string
	Initiator   Party
	Case        Case
	JuryID      string
	Status      Status
	Verdict     *Verdict
	Token       string
	Lease       *Lease
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Kind returns the case kind, a nil case reads as a two party dispute
func (d *Dispute) Kind() Kind {
	if d.Case == nil {
		return KindDispute
	}
	return d.Case.Kind()
}

// Respondent returns party B, nil for solo or unanswered disputes
func (d *Dispute) Respondent() *Party {
	if tp, ok := d.Case.(TwoParty); ok {
		return tp.Respondent
	}
	return nil
}

// Answered reports whether a respondent argument is on file
func (d *Dispute) Answered() bool {
	p := d.Respondent()
	return p != nil && p.Argument != ""
}

// Complete reports the terminal state
func (d *Dispute) Complete() bool { return d.Status == StatusComplete }

// ReadyForVerdict reports whether every argument the kind needs is present
// and no verdict has been saved yet
func (d *Dispute) ReadyForVerdict() bool {
	if d.Status != StatusPending {
		return false
	}
	return d.Kind() == KindSolo || d.Answered()
}
