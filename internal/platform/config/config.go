// Package config reads service settings from environment variables
// missing required keys panic through the logger at startup
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"juryduty/internal/platform/logger"
)

// Conf is a prefixed view over the environment
// New() reads global keys, Prefix("CORE_API_") scopes a module
type Conf struct{ prefix string }

// New returns an unprefixed Conf
func New() Conf { return Conf{} }

// Prefix nests another prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

func (c Conf) fail(k, value, msg string) {
	ev := logger.Get().Panic().Str("key", c.key(k))
	if value != "" {
		ev = ev.Str("value", value)
	}
	ev.Msg(msg)
}

// MustString returns the value or panics when unset
func (c Conf) MustString(k string) string {
	v := c.lookup(k)
	if v == "" {
		c.fail(k, "", "missing required env")
	}
	return v
}

// MustInt returns the parsed value or panics
func (c Conf) MustInt(k string) int {
	s := c.MustString(k)
	v, err := strconv.Atoi(s)
	if err != nil {
		c.fail(k, s, "invalid int value")
	}
	return v
}

// MustURL returns an absolute URL or panics
func (c Conf) MustURL(k string) *url.URL {
	s := c.MustString(k)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		c.fail(k, s, "invalid absolute URL")
	}
	return u
}

// MustPort returns a listen address like ":4000"
func (c Conf) MustPort(k string) string {
	s := c.MustString(k)
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		c.fail(k, s, "invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// MayString returns the value or def
func (c Conf) MayString(k, def string) string {
	if v := c.lookup(k); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def, warning on garbage
func (c Conf) MayInt(k string, def int) int {
	s := c.lookup(k)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).Int("default", def).Msg("invalid int; using default")
		return def
	}
	return v
}

// MayFloat64 returns the value or def, warning on garbage
func (c Conf) MayFloat64(k string, def float64) float64 {
	s := c.lookup(k)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).Float64("default", def).Msg("invalid float; using default")
		return def
	}
	return v
}

// MayBool returns the value or def, warning on garbage
func (c Conf) MayBool(k string, def bool) bool {
	s := c.lookup(k)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
		return def
	}
	return v
}

// MayDuration returns the value or def, warning on garbage
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	s := c.lookup(k)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
		return def
	}
	return d
}

// MayCSV splits a comma separated value, dropping blanks
func (c Conf) MayCSV(k string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(k), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value lowercased if it is one of allowed, def if unset
// anything else panics since a typo here would silently change behaviour
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v := strings.ToLower(c.MayString(k, def))
	for _, a := range allowed {
		if v == strings.ToLower(a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(k)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
