// Package verdict builds the jury prompt for a dispute and parses the
// machine readable footer out of the text the model sends back
package verdict

import (
	"errors"
	"fmt"
	"strings"

	"juryduty/internal/core/dispute"
	"juryduty/internal/core/jury"
)

// Prompt is what the text generator receives
type Prompt struct {
	System string
	User   string
}

// ErrNotReady is returned for a dispute still missing an argument
var ErrNotReady = errors.New("verdict: dispute is missing an argument")

// Build renders the prompt for d using persona p
func Build(p jury.Persona, d *dispute.Dispute) (Prompt, error) {
	if d == nil {
		return Prompt{}, ErrNotReady
	}
	switch d.Kind() {
	case dispute.KindSolo:
		return Prompt{System: p.SystemPrompt(dispute.KindSolo), User: soloPrompt(d)}, nil
	default:
		b := d.Respondent()
		if b == nil || b.Argument == "" {
			return Prompt{}, ErrNotReady
		}
		return Prompt{System: p.SystemPrompt(dispute.KindDispute), User: twoPartyPrompt(d, *b)}, nil
	}
}

func twoPartyPrompt(d *dispute.Dispute, b dispute.Party) string {
	a := d.Initiator
	var sb strings.Builder
	sb.WriteString("You are judging a dispute between two people.\n\n")
	fmt.Fprintf(&sb, "TOPIC: \"%s\"\n\n", d.Topic)
	fmt.Fprintf(&sb, "%s'S ARGUMENT:\n\"%s\"\n\n", strings.ToUpper(a.Name), a.Argument)
	fmt.Fprintf(&sb, "%s'S ARGUMENT:\n\"%s\"\n\n", strings.ToUpper(b.Name), b.Argument)
	sb.WriteString("Read both arguments carefully and deliver your verdict. You MUST pick a side and say clearly " +
		"who you are siding with, using their actual name. Only rule it a draw if both arguments are genuinely equal in merit.\n\n")
	sb.WriteString("After your verdict text, add these on NEW LINES in this exact format:\n")
	sb.WriteString("WINNER: person_a\n")
	fmt.Fprintf(&sb, "TEASER_A: [One punchy sentence that captures %s's side in a dramatic, curiosity-inducing way, "+
		"like a headline that makes people desperate to know who won]\n", a.Name)
	fmt.Fprintf(&sb, "TEASER_B: [Same for %s's side]\n\n", b.Name)
	fmt.Fprintf(&sb, "Use person_a if %s wins, person_b if %s wins, or neutral for a genuine draw.\n", a.Name, b.Name)
	sb.WriteString("The teasers should NOT be neutral summaries. They should be dramatic, slightly biased restatements " +
		"that create tension when read side-by-side. Think tabloid headlines, not Wikipedia.")
	return sb.String()
}

func soloPrompt(d *dispute.Dispute) string {
	a := d.Initiator
	var sb strings.Builder
	sb.WriteString("Someone wants to know if they are the asshole in this situation.\n\n")
	fmt.Fprintf(&sb, "TOPIC: \"%s\"\n\n", d.Topic)
	fmt.Fprintf(&sb, "%s'S SIDE OF THE STORY:\n\"%s\"\n\n", strings.ToUpper(a.Name), a.Argument)
	sb.WriteString("Read their account carefully and deliver your ruling. You MUST decide YTA or NTA.\n\n")
	sb.WriteString("After your verdict text, add these on NEW LINES in this exact format:\n")
	sb.WriteString("WINNER: person_b\n")
	fmt.Fprintf(&sb, "TEASER_A: [One punchy sentence that captures %s's situation like a tabloid headline]\n\n", a.Name)
	fmt.Fprintf(&sb, "Use person_a if %s is the asshole (YTA) and person_b if they are not (NTA).", a.Name)
	return sb.String()
}
