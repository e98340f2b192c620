package assistant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aula/internal/domains/assistant/model/dto"
	"aula/internal/domains/assistant/service"
	"aula/shared/validator"
	"aula/transport/http/response"
)

type Handler struct {
	svc service.Assistant
}

func New(svc service.Assistant) *Handler {
	return &Handler{
		svc: svc,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Route("/assistant", func(r chi.Router) {
		r.Post("/plan", h.Plan)
	})
}

// Plan interprets a natural-language request and returns the understood
// intent with up to two concrete openings.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	out, err := h.svc.Plan(r.Context(), req)
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, out)
}
