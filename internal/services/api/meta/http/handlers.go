// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"juryduty/internal/core/jury"
	"juryduty/internal/core/version"
	"juryduty/internal/modkit/httpkit"
	"juryduty/internal/modkit/swaggerkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies
// a nil PG or RDS is reported as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          Pinger
	RDS         Pinger
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/jury", h.jury)

	swaggerkit.Describe(
		swaggerkit.Op{Method: "GET", Path: "/meta/health", Tag: "Meta", Summary: "Health check"},
		swaggerkit.Op{Method: "GET", Path: "/meta/ready", Tag: "Meta", Summary: "Readiness probe with dependency checks"},
		swaggerkit.Op{Method: "GET", Path: "/meta/version", Tag: "Meta", Summary: "Build and version info"},
		swaggerkit.Op{Method: "GET", Path: "/meta/service", Tag: "Meta", Summary: "Service info and uptime"},
		swaggerkit.Op{Method: "GET", Path: "/meta/jury", Tag: "Meta", Summary: "Judge personas"},
	)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"juryduty-api"`
	Started string `json:"started" example:"2026-03-01T13:00:00Z"`
	Now     string `json:"now"     example:"2026-03-01T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"juryduty-api"`
	Started string `json:"started" example:"2026-03-01T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, p Pinger) ReadyCheck {
		if p == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	}

	pg := check("pg", h.deps.PG)
	rds := check("redis", h.deps.RDS)

	// redis only caches tallies, losing it degrades
	overall := "ok"
	switch {
	case pg.Status != "ok":
		overall = "fail"
	case rds.Status == "fail":
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{pg, rds},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Judge personas
// @Tags Meta
// @Produce json
// @Success 200 {array} jury.Persona "ok"
// @Router /meta/jury [get]
func (h *handlers) jury(_ *http.Request) (any, error) {
	return jury.All(), nil
}
