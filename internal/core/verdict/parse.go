package verdict

import (
	"strings"
	"unicode"

	"juryduty/internal/core/dispute"
)

// Result is either Parsed or Unparseable
type Result interface{ isResult() }

// Parsed is a usable verdict
// WinnerDefaulted is set when the footer had no usable WINNER line
type Parsed struct {
	Winner          dispute.Side
	TeaserA         string
	TeaserB         string
	Narrative       string
	WinnerDefaulted bool
}

// Unparseable carries text that held nothing but footer lines, or nothing at all
type Unparseable struct {
	Raw string
}

func (Parsed) isResult()      {}
func (Unparseable) isResult() {}

const (
	keyWinner  = "WINNER"
	keyTeaserA = "TEASER_A"
	keyTeaserB = "TEASER_B"
)

// Parse splits raw model output into narrative and footer fields
// the trailing run of footer lines is the footer and is always stripped
// above it a footer line counts only when its value is usable, so prose such as
// "Winner: Ana, clearly" stays in the narrative; the trailing footer wins over earlier lines
func Parse(kind dispute.Kind, raw string) Result {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	// start of the trailing footer block, blank lines inside it are allowed
	start := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if _, _, ok := footerLine(lines[i]); !ok {
			break
		}
		start = i
	}

	fields := map[string]string{}
	for _, ln := range lines[start:] {
		if key, val, ok := footerLine(ln); ok {
			if _, seen := fields[key]; !seen {
				fields[key] = val
			}
		}
	}

	var keep []string
	for _, ln := range lines[:start] {
		key, val, ok := footerLine(ln)
		if ok && key == keyWinner {
			_, ok = winner(kind, val)
		}
		if !ok {
			keep = append(keep, ln)
			continue
		}
		if _, seen := fields[key]; !seen {
			fields[key] = val
		}
	}

	narrative := strings.TrimSpace(strings.Join(keep, "\n"))
	if narrative == "" {
		return Unparseable{Raw: raw}
	}

	out := Parsed{Narrative: narrative, TeaserA: teaser(fields[keyTeaserA])}
	if kind != dispute.KindSolo {
		out.TeaserB = teaser(fields[keyTeaserB])
	}
	if w, ok := winner(kind, fields[keyWinner]); ok {
		out.Winner = w
	} else {
		out.Winner = DefaultWinner(kind)
		out.WinnerDefaulted = true
	}
	return out
}

// DefaultWinner is the side recorded when the model gave no usable winner
// a solo writer gets the benefit of the doubt
func DefaultWinner(kind dispute.Kind) dispute.Side {
	if kind == dispute.KindSolo {
		return dispute.SideB
	}
	return dispute.SideNeutral
}

// footerLine recognises "WINNER: x" style lines, tolerating markdown around the key
func footerLine(ln string) (key, val string, ok bool) {
	s := strings.TrimLeft(strings.TrimSpace(ln), "*_#>- \t")
	head, tail, found := strings.Cut(s, ":")
	if !found {
		return "", "", false
	}
	key = strings.ToUpper(strings.Trim(head, "*_` \t"))
	key = strings.ReplaceAll(key, " ", "_")
	switch key {
	case keyWinner, keyTeaserA, keyTeaserB:
	default:
		return "", "", false
	}
	val = strings.TrimSpace(strings.Trim(strings.TrimSpace(tail), "*`"))
	return key, val, true
}

func winner(kind dispute.Kind, v string) (dispute.Side, bool) {
	words := strings.FieldsFunc(strings.ToLower(v), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	if len(words) == 0 {
		return "", false
	}
	w := words[0]
	if w == "person" && len(words) > 1 {
		w += "_" + words[1]
	}

	switch w {
	case "person_a":
		return dispute.SideA, true
	case "person_b":
		return dispute.SideB, true
	}
	if kind == dispute.KindSolo {
		switch w {
		case "yta":
			return dispute.SideA, true
		case "nta":
			return dispute.SideB, true
		}
		return "", false
	}
	switch w {
	case "neutral", "draw", "tie":
		return dispute.SideNeutral, true
	}
	return "", false
}

func teaser(v string) string {
	return strings.TrimSpace(strings.Trim(v, "[]\"' "))
}
