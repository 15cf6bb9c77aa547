// Package http provides http transport for disputes
package http

import (
	stdhttp "net/http"

	"juryduty/internal/modkit/httpkit"
	"juryduty/internal/modkit/swaggerkit"
	"juryduty/internal/services/api/disputes/domain"
)

// Register mounts dispute endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)

	// static before the id pattern
	httpkit.Get(r, "/next", h.next)
	httpkit.Get(r, "/{id}", h.get)

	// the challenge slot
	httpkit.PutJSON[domain.LockInput](r, "/{id}/challenge", h.lock)
	httpkit.PostJSON[domain.RespondInput](r, "/{id}/challenge", h.respond)

	httpkit.PostJSON[domain.RegenerateInput](r, "/{id}/verdict", h.regenerate)

	swaggerkit.Describe(
		swaggerkit.Op{Method: "POST", Path: "/disputes", Tag: "Disputes", Summary: "Open a dispute or a solo story",
			Body: []string{"kind", "topic", "name", "argument"}, Statuses: map[int]string{201: "Created", 502: "Saved, verdict failed"}},
		swaggerkit.Op{Method: "GET", Path: "/disputes/next", Tag: "Disputes", Summary: "Random other completed dispute"},
		swaggerkit.Op{Method: "GET", Path: "/disputes/{id}", Tag: "Disputes", Summary: "Public view of a dispute",
			Statuses: map[int]string{404: "Not found"}},
		swaggerkit.Op{Method: "PUT", Path: "/disputes/{id}/challenge", Tag: "Challenge", Summary: "Acquire or refresh the response lock",
			Body: []string{"token", "session_id"}, Statuses: map[int]string{404: "Invalid challenge link", 409: "Completed or answered", 423: "Someone is responding"}},
		swaggerkit.Op{Method: "POST", Path: "/disputes/{id}/challenge", Tag: "Challenge", Summary: "Submit the response",
			Body: []string{"token", "session_id", "name", "argument"}, Statuses: map[int]string{404: "Invalid challenge link", 409: "Lock lost or answered", 502: "Saved, verdict failed"}},
		swaggerkit.Op{Method: "POST", Path: "/disputes/{id}/verdict", Tag: "Challenge", Summary: "Retry verdict generation",
			Body: []string{"token"}, Statuses: map[int]string{404: "Invalid challenge link", 409: "Awaiting response", 502: "Verdict failed"}},
	)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /disputes Disputes disputesCreate
// @Summary Open a dispute or a solo story
// @Tags Disputes
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Dispute"
// @Success 201 {object} domain.CreateResult "created"
// @Failure 502 {object} domain.Saved "saved, verdict failed"
// @Router /disputes [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	res, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(res), nil
}

// @Summary Public view of a dispute
// @Tags Disputes
// @Produce json
// @Param id path string true "Dispute id"
// @Success 200 {object} domain.View "ok"
// @Router /disputes/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}

// @Summary Random other completed dispute
// @Tags Disputes
// @Produce json
// @Param exclude query string false "Dispute id to skip"
// @Success 200 {object} domain.NextResult "ok"
// @Router /disputes/next [get]
func (h *handlers) next(r *stdhttp.Request) (any, error) {
	return h.svc.Next(r.Context(), httpkit.Query(r, "exclude"))
}

// @Summary Acquire or refresh the response lock
// @Tags Challenge
// @Accept json
// @Produce json
// @Param id path string true "Dispute id"
// @Param payload body domain.LockInput true "Lock"
// @Success 200 {object} domain.LockResult "held"
// @Failure 423 {object} domain.Refusal "someone is responding"
// @Router /disputes/{id}/challenge [put]
func (h *handlers) lock(r *stdhttp.Request, in domain.LockInput) (any, error) {
	return h.svc.Lock(r.Context(), httpkit.Param(r, "id"), in)
}

// @Summary Submit the response
// @Tags Challenge
// @Accept json
// @Produce json
// @Param id path string true "Dispute id"
// @Param payload body domain.RespondInput true "Response"
// @Success 200 {object} domain.RespondResult "judged"
// @Router /disputes/{id}/challenge [post]
func (h *handlers) respond(r *stdhttp.Request, in domain.RespondInput) (any, error) {
	return h.svc.Respond(r.Context(), httpkit.Param(r, "id"), in)
}

// @Summary Retry verdict generation
// @Tags Challenge
// @Accept json
// @Produce json
// @Param id path string true "Dispute id"
// @Param payload body domain.RegenerateInput true "Token"
// @Success 200 {object} domain.RegenerateResult "judged"
// @Router /disputes/{id}/verdict [post]
func (h *handlers) regenerate(r *stdhttp.Request, in domain.RegenerateInput) (any, error) {
	return h.svc.Regenerate(r.Context(), httpkit.Param(r, "id"), in)
}
