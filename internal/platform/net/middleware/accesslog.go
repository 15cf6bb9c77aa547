// Package middleware holds the service's HTTP middleware and thin chi adapters
package middleware

import (
	"net/http"
	"time"

	"juryduty/internal/platform/logger"
	pnet "juryduty/internal/platform/net"
)

// AccessLogOptions configures AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at or above this duration as warnings, 0 disables
	Slow time.Duration
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// AccessLogZerolog writes one line per request through the request logger
// it also seeds the context so logger.C in handlers carries the request id
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(logger.WithRequest(r.Context(), pnet.RequestID(r.Context())))
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			took := time.Since(start)

			log := logger.C(r.Context())
			ev := log.Info()
			switch {
			case rec.status >= http.StatusInternalServerError:
				ev = log.Error()
			case opt.Slow > 0 && took >= opt.Slow:
				ev = log.Warn().Bool("slow", true)
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}
