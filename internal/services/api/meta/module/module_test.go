package module

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"juryduty/internal/modkit"
	"juryduty/internal/modkit/repokit"
	"juryduty/internal/platform/config"
	"juryduty/internal/platform/logger"
	phttp "juryduty/internal/platform/net/http"
)

// nopPG has no Ping so readiness cannot vouch for it
type nopPG struct{ repokit.TxRunner }

func TestMetaRoutes(t *testing.T) {
	m := New(modkit.Deps{Log: *logger.Get(), Cfg: config.New(), PG: nopPG{}}).(*Module)
	if m.Name() != "meta" || m.Prefix() != "/meta" {
		t.Fatalf("name=%q prefix=%q", m.Name(), m.Prefix())
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/version", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"service":"juryduty-api"`) {
		t.Fatalf("version: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/ready", nil))
	if !strings.Contains(rec.Body.String(), `"status":"fail"`) {
		t.Fatalf("ready: %s", rec.Body.String())
	}
}
