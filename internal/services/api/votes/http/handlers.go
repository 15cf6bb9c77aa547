// Package http provides http transport for votes
package http

import (
	stdhttp "net/http"

	"juryduty/internal/modkit/httpkit"
	"juryduty/internal/modkit/swaggerkit"
	"juryduty/internal/services/api/votes/domain"
)

// Register mounts vote endpoints under a router already scoped to /disputes/{id}/vote
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CastInput](r, "/", h.cast)
	httpkit.Get(r, "/", h.status)

	swaggerkit.Describe(
		swaggerkit.Op{Method: "POST", Path: "/disputes/{id}/vote", Tag: "Votes", Summary: "Cast a vote",
			Body: []string{"choice"}, Statuses: map[int]string{404: "Not found", 409: "Already voted"}},
		swaggerkit.Op{Method: "GET", Path: "/disputes/{id}/vote", Tag: "Votes", Summary: "Vote status for the caller"},
	)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Cast a vote
// @Tags Votes
// @Accept json
// @Produce json
// @Param id path string true "Dispute id"
// @Param payload body domain.CastInput true "Ballot"
// @Success 200 {object} domain.CastResult "recorded"
// @Failure 409 {object} domain.AlreadyVoted "already voted"
// @Router /disputes/{id}/vote [post]
func (h *handlers) cast(r *stdhttp.Request, in domain.CastInput) (any, error) {
	return h.svc.Cast(r.Context(), httpkit.Param(r, "id"), httpkit.Client(r), in)
}

// @Summary Vote status for the caller
// @Tags Votes
// @Produce json
// @Param id path string true "Dispute id"
// @Success 200 {object} domain.StatusResult "ok"
// @Router /disputes/{id}/vote [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Status(r.Context(), httpkit.Param(r, "id"), httpkit.Client(r))
}
