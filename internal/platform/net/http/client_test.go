package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
)

func TestForwardedClient(t *testing.T) {
	cases := []struct {
		name string
		xff  string
		real string
		want string
	}{
		{"first forwarded entry", "203.0.113.7, 10.0.0.1", "10.0.0.2", "203.0.113.7"},
		{"single forwarded", " 198.51.100.4 ", "", "198.51.100.4"},
		{"real ip fallback", "", "192.0.2.9", "192.0.2.9"},
		{"blank forwarded falls back", " , 10.0.0.1", "192.0.2.1", "192.0.2.1"},
		{"anonymous", "", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest(stdhttp.MethodPost, "/", nil)
			if c.xff != "" {
				r.Header.Set("X-Forwarded-For", c.xff)
			}
			if c.real != "" {
				r.Header.Set("X-Real-IP", c.real)
			}
			if got := ForwardedClient(r); got != c.want {
				t.Fatalf("ForwardedClient = %q, want %q", got, c.want)
			}
		})
	}
}
