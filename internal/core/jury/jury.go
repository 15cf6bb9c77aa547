// Package jury holds the judge personas that deliver verdicts
package jury

import (
	"math/rand/v2"

	"juryduty/internal/core/dispute"
)

// Persona is a judge character
// the two prompts frame the same voice for two party and solo cases
type Persona struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Portrait string `json:"portrait"`

	system     string
	soloSystem string
}

// SystemPrompt returns the persona prompt for a dispute of kind k
func (p Persona) SystemPrompt(k dispute.Kind) string {
	if k == dispute.KindSolo {
		return p.soloSystem
	}
	return p.system
}

var personas = []Persona{diana}

// pick is swapped in tests
var pick = func(n int) int { return rand.IntN(n) }

// All lists every persona in registry order
func All() []Persona { return append([]Persona(nil), personas...) }

// Default is the persona used when a stored id is no longer registered
func Default() Persona { return personas[0] }

// Random picks the persona assigned to a new dispute
func Random() Persona { return personas[pick(len(personas))] }

// Lookup resolves a stored jury id, ok is false when it fell back to Default
func Lookup(id string) (Persona, bool) {
	for _, p := range personas {
		if p.ID == id {
			return p, true
		}
	}
	return Default(), false
}
