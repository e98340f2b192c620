package timetable

import (
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"aula/internal/domains/timetable/model/dto"
	"aula/internal/domains/timetable/service"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/validator"
	"aula/transport/http/middleware"
	"aula/transport/http/response"
)

type Handler struct {
	svc service.Timetable
}

func New(svc service.Timetable) *Handler {
	return &Handler{
		svc: svc,
	}
}

// Router registers the timetable administration routes. All of them are
// admin-only.
func (h *Handler) Router(r chi.Router, auth *middleware.Auth) {
	r.Route("/timetables", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/preview", h.Preview)
		r.Post("/sync", h.Sync)
		r.Delete("/{tag}", h.Rollback)
		r.Get("/history", h.History)
	})
}

// Preview accepts a multipart timetable document and returns the extracted
// draft for review. Nothing is written to the calendar.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constant.MaxDocumentBytes); err != nil {
		response.WithError(w, failure.BadRequestFromString("expected a multipart form with a 'file' field"))

		return
	}

	file, header, err := r.FormFile(constant.FormFile)
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("missing 'file' field"))

		return
	}
	defer file.Close()

	// Read one byte past the cap so oversized uploads are detected rather
	// than silently truncated.
	document, err := io.ReadAll(io.LimitReader(file, constant.MaxDocumentBytes+1))
	if err != nil {
		response.WithError(w, failure.InternalError(err))

		return
	}

	req := dto.PreviewRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get(constant.RequestHeaderContentType),
		Document:    document,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(w, err)

		return
	}

	out, err := h.svc.Preview(r.Context(), req)
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, out)
}

// Sync writes a confirmed draft into the recurring partition as one batch.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	var req dto.SyncRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	out, err := h.svc.Sync(r.Context(), req)
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, out)
}

// Rollback removes every recurring entry of the tagged cohort.
func (h *Handler) Rollback(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, constant.RequestParamTag)
	if unescaped, err := url.PathUnescape(tag); err == nil {
		tag = unescaped
	}

	out, err := h.svc.Rollback(r.Context(), tag)
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, out)
}

// History lists past sync batches, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.History(r.Context())
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, out)
}
