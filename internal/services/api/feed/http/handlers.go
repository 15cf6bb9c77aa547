// Package http provides http transport for the feed
package http

import (
	stdhttp "net/http"
	"strconv"

	"juryduty/internal/modkit/httpkit"
	"juryduty/internal/modkit/swaggerkit"
	"juryduty/internal/services/api/feed/domain"
)

// Register mounts the feed endpoint
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.page)

	swaggerkit.Describe(swaggerkit.Op{Method: "GET", Path: "/feed", Tag: "Feed", Summary: "Completed disputes, ten per page"})
}

type handlers struct{ svc domain.ServicePort }

// @Summary Completed disputes, ten per page
// @Tags Feed
// @Produce json
// @Param sort query string false "newest or most_votes"
// @Param page query int false "1 based page"
// @Success 200 {object} domain.Page "ok"
// @Router /feed [get]
func (h *handlers) page(r *stdhttp.Request) (any, error) {
	// unparsable pages fall back to the first
	page, _ := strconv.Atoi(httpkit.Query(r, "page"))
	return h.svc.Page(r.Context(), httpkit.Query(r, "sort"), page)
}
