package dispute

import (
	"crypto/rand"
)

// URL safe alphabet, 64 symbols so a byte masked to 6 bits maps without bias
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

const (
	idLen    = 12
	tokenLen = 24
)

// randRead is swapped in tests
var randRead = rand.Read

// NewID returns a public dispute id
func NewID() (string, error) { return random(idLen) }

// NewToken returns a challenge token
// it is the only capability a respondent holds, so it never leaves the create response
func NewToken() (string, error) { return random(tokenLen) }

func random(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := randRead(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = alphabet[b&63]
	}
	return string(buf), nil
}
