// Package textclean tidies user supplied text before it is stored or sent to the jury
//
// Text keeps its meaning: no case folding and no compatibility mapping.
// Pipeline
// 1 drop invalid UTF-8
// 2 NFC composition so "e + combining acute" counts as one character
// 3 drop control and format runes (NUL, C1, zero widths, BOM) except tab and newline
// 4 CRLF and CR become LF
// 5 trim
package textclean

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.Predicate(unwanted)),
		)
	},
}

func unwanted(r rune) bool {
	if r == '\n' || r == '\t' || r == '\r' {
		return false
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}

// Text cleans a multi line field such as an argument
// blank line runs are capped at one empty line
func Text(s string) string {
	s = base(s)
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}

// Line cleans a single line field such as a topic or a name
// every whitespace run, newlines included, becomes one space
func Line(s string) string {
	return strings.Join(strings.Fields(base(s)), " ")
}

func base(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = s
	}

	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	return strings.TrimSpace(out)
}

// Len counts characters the way length limits are enforced
func Len(s string) int { return len([]rune(s)) }
