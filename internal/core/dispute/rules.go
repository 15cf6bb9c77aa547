package dispute

import (
	"time"
)

// Reason explains why an operation on a dispute was refused
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonNotFound    Reason = "not found"
	ReasonCompleted   Reason = "already completed"
	ReasonAnswered    Reason = "already answered"
	ReasonBusy        Reason = "someone is currently responding"
	ReasonLeaseLost   Reason = "lock expired or held by another session"
	ReasonNotComplete Reason = "cannot vote on an incomplete dispute"
)

// LockBlocker classifies a refused lock request in priority order
// solo disputes have no response slot and read as not found
func LockBlocker(d *Dispute, session string, now time.Time) Reason {
	switch {
	case d == nil || d.Kind() == KindSolo:
		return ReasonNotFound
	case d.Complete():
		return ReasonCompleted
	case d.Answered():
		return ReasonAnswered
	case d.Lease.Active(now) && d.Lease.Holder != session:
		return ReasonBusy
	}
	return ReasonNone
}

// SubmitBlocker classifies a refused response submission
// the caller has already matched the token, so a nil dispute means a bad link
func SubmitBlocker(d *Dispute, session string, now time.Time) Reason {
	switch {
	case d == nil || d.Kind() == KindSolo:
		return ReasonNotFound
	case d.Complete():
		return ReasonCompleted
	case d.Answered():
		return ReasonAnswered
	case !d.Lease.Active(now) || d.Lease.Holder != session:
		return ReasonLeaseLost
	}
	return ReasonNone
}

// VoteBlocker classifies a ballot against d before the duplicate check
func VoteBlocker(d *Dispute) Reason {
	switch {
	case d == nil:
		return ReasonNotFound
	case !d.Complete():
		return ReasonNotComplete
	}
	return ReasonNone
}
