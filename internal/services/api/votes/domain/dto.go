// Package domain holds the votes API contracts
package domain

import (
	disputes "juryduty/internal/services/api/disputes/domain"
)

// CastInput is one ballot
type CastInput struct {
	Choice string `json:"choice" validate:"required,oneof=person_a person_b" example:"person_a"`
}

// Counts is the tally for a dispute, Total is always PersonA plus PersonB
type Counts struct {
	PersonA int `json:"person_a"`
	PersonB int `json:"person_b"`
	Total   int `json:"total"`
}

// NewCounts fills Total
func NewCounts(a, b int) Counts { return Counts{PersonA: a, PersonB: b, Total: a + b} }

// CastResult is returned after a ballot is recorded
type CastResult struct {
	Success bool   `json:"success" example:"true"`
	Counts  Counts `json:"counts"`
}

// AlreadyVoted is attached to the 409 for a repeated ballot
type AlreadyVoted struct {
	AlreadyVoted bool                  `json:"already_voted"`
	Counts       Counts                `json:"counts"`
	Verdict      *disputes.VerdictView `json:"verdict"`
}

// StatusResult tells a caller whether they voted
// counts and verdict stay hidden until they have
type StatusResult struct {
	Voted      bool                  `json:"voted"`
	YourChoice *string               `json:"your_choice,omitempty"`
	Counts     *Counts               `json:"counts,omitempty"`
	Verdict    *disputes.VerdictView `json:"verdict,omitempty"`
}
