package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "juryduty/internal/platform/net/http"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func get(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	mux := chi.NewRouter()
	phttp.AdaptChi(mux).Route("/meta", func(r phttp.Router) { Register(r, d) })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	var h HealthResponse
	code := get(t, Deps{ServiceName: "juryduty-api", StartedAt: time.Now()}, "/meta/health", &h)
	if code != stdhttp.StatusOK || !h.OK || h.Service != "juryduty-api" {
		t.Fatalf("code=%d body=%+v", code, h)
	}
}

func TestReady(t *testing.T) {
	down := pinger{err: errors.New("connection refused")}
	cases := []struct {
		name string
		pg   Pinger
		rds  Pinger
		want string
	}{
		{"all up", pinger{}, pinger{}, "ok"},
		{"no redis configured", pinger{}, nil, "ok"},
		{"redis down", pinger{}, down, "degraded"},
		{"pg down", down, pinger{}, "fail"},
		{"pg missing", nil, pinger{}, "fail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r ReadyResponse
			get(t, Deps{PG: tc.pg, RDS: tc.rds}, "/meta/ready", &r)
			if r.Status != tc.want {
				t.Fatalf("status = %q want %q (%+v)", r.Status, tc.want, r.Checks)
			}
			if len(r.Checks) != 2 || r.Checks[0].Name != "pg" || r.Checks[1].Name != "redis" {
				t.Fatalf("checks = %+v", r.Checks)
			}
		})
	}
}

func TestReadyReportsError(t *testing.T) {
	var r ReadyResponse
	get(t, Deps{PG: pinger{err: errors.New("boom")}}, "/meta/ready", &r)
	if r.Checks[0].Status != "fail" || r.Checks[0].Error != "boom" || r.Checks[1].Status != "skipped" {
		t.Fatalf("checks = %+v", r.Checks)
	}
}

func TestServiceUptime(t *testing.T) {
	var s ServiceResponse
	get(t, Deps{ServiceName: "x", StartedAt: time.Now().Add(-90 * time.Second)}, "/meta/service", &s)
	if s.Uptime < 90 || s.Name != "x" {
		t.Fatalf("service = %+v", s)
	}
}

func TestJuryListsPersonas(t *testing.T) {
	var ps []map[string]any
	if code := get(t, Deps{}, "/meta/jury", &ps); code != stdhttp.StatusOK || len(ps) == 0 {
		t.Fatalf("code=%d personas=%v", code, ps)
	}
}
