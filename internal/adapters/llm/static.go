package llm

import (
	"context"
	"hash/fnv"
	"strings"
)

// Static returns a canned verdict picked from the prompt hash
// it keeps local runs and tests off the network
type Static struct{}

// Name implements Completer
func (Static) Name() string { return ProviderStatic }

// Complete implements Completer
func (Static) Complete(ctx context.Context, system, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	n := h.Sum32()

	if strings.Contains(prompt, "YTA or NTA") {
		if n%2 == 0 {
			return "NTA: you're not the asshole.\n\nYou asked nicely and got ignored. That is on them.\n\nWINNER: person_b\nTEASER_A: They only asked once and got treated like a villain", nil
		}
		return "YTA: you're the asshole here.\n\nYou knew the answer before you wrote this.\n\nWINNER: person_a\nTEASER_A: The favour that turned into a week long hostage situation", nil
	}
	switch n % 3 {
	case 0:
		return "I'm siding with the first speaker.\n\nThe second argument had heart but no receipts.\n\nWINNER: person_a\nTEASER_A: One of them kept score\nTEASER_B: The other kept excuses", nil
	case 1:
		return "I'm siding with the second speaker.\n\nThe opening argument was loud, not right.\n\nWINNER: person_b\nTEASER_A: Confident and about to lose\nTEASER_B: Patient and done being ignored", nil
	default:
		return "This one's a draw.\n\nYou are both wrong in equal and impressive amounts.\n\nWINNER: neutral\nTEASER_A: Swears it was obvious\nTEASER_B: Swears it was the opposite", nil
	}
}
