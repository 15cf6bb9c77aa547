package http

import (
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChiRoutesAndParams(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Route("/api/v1", func(v1 Router) {
		v1.Group(func(g Router) {
			g.Use(func(next stdhttp.Handler) stdhttp.Handler {
				return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
					w.Header().Set("X-Group", "yes")
					next.ServeHTTP(w, req)
				})
			})
			g.Get("/disputes/{id}", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				_, _ = io.WriteString(w, URLParam(req, "id"))
			})
		})
		v1.Put("/disputes/{id}/challenge", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			w.WriteHeader(stdhttp.StatusAccepted)
		})
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/v1/disputes/abc123", nil))
	if rec.Body.String() != "abc123" || rec.Header().Get("X-Group") != "yes" {
		t.Fatalf("got %q headers=%v", rec.Body.String(), rec.Header())
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPut, "/api/v1/disputes/abc123/challenge", nil))
	if rec.Code != stdhttp.StatusAccepted {
		t.Fatalf("put status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodDelete, "/api/v1/disputes/abc123", nil))
	if rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	MountProfiler(r, "/debug", false)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler should 404, got %d", rec.Code)
	}

	r = AdaptChi(chi.NewRouter())
	MountProfiler(r, "/debug", true)
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("profiler index = %d", rec.Code)
	}
}
