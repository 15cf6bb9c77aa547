// Package domain holds the disputes API contracts
package domain

import "time"

// CreateInput opens a dispute, kind defaults to "dispute"
type CreateInput struct {
	Kind     string `json:"kind" validate:"omitempty,oneof=dispute solo" example:"dispute"`
	Topic    string `json:"topic" validate:"required,notblank" example:"Who forgot the anniversary dinner"`
	Name     string `json:"name" validate:"required,notblank" example:"Ana"`
	Argument string `json:"argument" validate:"required,notblank" example:"I booked the table, they never showed"`
}

// CreateResult is what the initiator keeps
// ChallengeURL carries the token for two party disputes
// RetryToken is only set for solo disputes, it unlocks the regenerate path
type CreateResult struct {
	DisputeID    string `json:"dispute_id" example:"Xk3_9aQ2LmZp"`
	Kind         string `json:"kind" example:"dispute"`
	PublicURL    string `json:"public_url" example:"http://localhost:3000/dispute/Xk3_9aQ2LmZp"`
	ChallengeURL string `json:"challenge_url,omitempty"`
	RetryToken   string `json:"retry_token,omitempty"`
	Status       string `json:"status" example:"pending"`
}

// LockInput claims the response slot for one browser session
type LockInput struct {
	Token     string `json:"token" validate:"required,notblank"`
	SessionID string `json:"session_id" validate:"required,notblank,max=128" example:"b1946ac9"`
}

// LockResult confirms the slot is held until ExpiresAt
type LockResult struct {
	Acquired  bool      `json:"acquired" example:"true"`
	Locked    bool      `json:"locked" example:"false"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RespondInput is the second side of a dispute
type RespondInput struct {
	Token     string `json:"token" validate:"required,notblank"`
	SessionID string `json:"session_id" validate:"required,notblank,max=128"`
	Name      string `json:"name" validate:"required,notblank" example:"Bo"`
	Argument  string `json:"argument" validate:"required,notblank" example:"The booking was for the wrong night"`
}

// RespondResult points the respondent at the finished dispute
type RespondResult struct {
	Success          bool   `json:"success" example:"true"`
	VerdictGenerated bool   `json:"verdict_generated" example:"true"`
	RedirectURL      string `json:"redirect_url" example:"/dispute/Xk3_9aQ2LmZp"`
}

// RegenerateInput retries generation for a dispute stuck in pending
type RegenerateInput struct {
	Token string `json:"token" validate:"required,notblank"`
}

// RegenerateResult carries the stored verdict
type RegenerateResult struct {
	DisputeID string       `json:"dispute_id"`
	Status    string       `json:"status" example:"complete"`
	Verdict   *VerdictView `json:"verdict"`
}

// NextResult is another completed dispute, ID is null when there is none
type NextResult struct {
	ID *string `json:"id"`
}

// PartyView is one side as shown publicly
type PartyView struct {
	Name     string `json:"name"`
	Argument string `json:"argument,omitempty"`
}

// VerdictView is the generated verdict
type VerdictView struct {
	Text    string `json:"text"`
	Winner  string `json:"winner" example:"person_a"`
	TeaserA string `json:"person_a_teaser,omitempty"`
	TeaserB string `json:"person_b_teaser,omitempty"`
}

// JuryView is the persona that judged the dispute
type JuryView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Portrait string `json:"portrait"`
}

// View is the public dispute, arguments appear only once it is complete
type View struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Topic       string       `json:"topic"`
	PersonA     PartyView    `json:"person_a"`
	PersonB     *PartyView   `json:"person_b"`
	Jury        JuryView     `json:"jury"`
	Status      string       `json:"status"`
	Verdict     *VerdictView `json:"verdict"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at"`
}

// Refusal is attached to 409 and 423 errors
type Refusal struct {
	Locked bool   `json:"locked,omitempty"`
	Reason string `json:"reason"`
}

// Saved is attached to 502 errors raised after a write went through
type Saved struct {
	DisputeID     string `json:"dispute_id"`
	ResponseSaved bool   `json:"response_saved"`
	RetryToken    string `json:"retry_token,omitempty"`
}
