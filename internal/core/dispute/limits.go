package dispute

import (
	"strings"

	"juryduty/internal/core/textclean"
	perr "juryduty/internal/platform/errors"
)

// Input limits, counted in runes after cleaning
const (
	MaxTopic        = 300
	MaxName         = 50
	MaxArgument     = 500
	MaxSoloArgument = 2000
)

// MaxArgumentFor returns the initiator argument limit for k
func MaxArgumentFor(k Kind) int {
	if k == KindSolo {
		return MaxSoloArgument
	}
	return MaxArgument
}

// CleanTopic normalizes and checks a topic
func CleanTopic(s string) (string, error) {
	return check("topic", "Topic", textclean.Line(s), MaxTopic)
}

// CleanParty normalizes and checks one side
// prefix qualifies error fields, "person_b" reports person_b_name, "" reports name
func CleanParty(prefix string, p Party, maxArg int) (Party, error) {
	name, err := check(qualify(prefix, "name"), "Name", textclean.Line(p.Name), MaxName)
	if err != nil {
		return Party{}, err
	}
	arg, err := check(qualify(prefix, "argument"), "Argument", textclean.Text(p.Argument), maxArg)
	if err != nil {
		return Party{}, err
	}
	return Party{Name: name, Argument: arg}, nil
}

func qualify(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "_" + field
}

func check(field, label, v string, max int) (string, error) {
	if strings.TrimSpace(v) == "" {
		return "", perr.WithField(perr.Validationf("%s is required", label), field)
	}
	if textclean.Len(v) > max {
		return "", perr.WithField(perr.Validationf("%s must be under %d characters", label, max), field)
	}
	return v, nil
}
