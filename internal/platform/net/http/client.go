package http

import (
	stdhttp "net/http"
	"strings"
)

// ForwardedClient returns the client address reported by the proxy chain
// the first X-Forwarded-For entry wins, then X-Real-IP, otherwise ""
// RemoteAddr is ignored so direct connections stay anonymous
func ForwardedClient(r *stdhttp.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Real-IP"))
}
