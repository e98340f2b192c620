package reservation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aula/internal/domains/reservation/model/dto"
	"aula/internal/domains/reservation/service"
	"aula/shared/constant"
	"aula/shared/validator"
	"aula/transport/http/middleware"
	"aula/transport/http/response"
)

type Handler struct {
	svc service.Reservation
}

func New(svc service.Reservation) *Handler {
	return &Handler{
		svc: svc,
	}
}

func (h *Handler) Router(r chi.Router, auth *middleware.Auth) {
	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", h.Book)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Cancel)
		r.With(auth.RequireAdmin).Post("/cleanup", h.Cleanup)
	})
}

// Book creates a transient booking. A window blocked by existing
// reservations answers 409 with the blocking entries and up to two
// alternative slots.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReservationRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	out, err := h.svc.Book(r.Context(), req)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if out.Status == dto.StatusConflict {
		response.WithJSON(w, http.StatusConflict, out)

		return
	}

	response.WithJSON(w, http.StatusCreated, out)
}

// Get returns a single transient booking.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	out, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, out)
}

// Cancel deletes a booking, subject to ownership and the 48-hour window.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	if err := h.svc.Cancel(r.Context(), id); err != nil {
		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "reservation cancelled")
}

// Cleanup removes transient bookings that already ended.
func (h *Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.CleanupExpired(r.Context())
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.CleanupResponse{Removed: removed})
}
