package schedule

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"aula/internal/domains/reservation/model"
	"aula/internal/domains/schedule/model/dto"
	"aula/internal/domains/schedule/service"
	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/timezone"
	"aula/shared/validator"
	"aula/transport/http/response"
)

type Handler struct {
	svc service.Schedule
}

func New(svc service.Schedule) *Handler {
	return &Handler{
		svc: svc,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Route("/schedule", func(r chi.Router) {
		r.Post("/conflicts", h.CheckConflicts)
		r.Post("/suggestions", h.SuggestSlots)
	})
}

// CheckConflicts is the read-only availability probe: it reports what blocks
// a window for an audience without creating anything.
func (h *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckConflictsRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	window, err := parseWindow(req.Start, req.End)
	if err != nil {
		response.WithError(w, err)

		return
	}

	conflicts, err := h.svc.FindConflicts(r.Context(), window, model.AudienceFilter(req.Audience))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if conflicts == nil {
		conflicts = []dto.ConflictReport{}
	}

	response.WithJSON(w, http.StatusOK, dto.CheckConflictsResponse{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	})
}

// SuggestSlots searches forward from a reference time for free openings.
func (h *Handler) SuggestSlots(w http.ResponseWriter, r *http.Request) {
	var req dto.SuggestSlotsRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	reference := timezone.Now()

	if req.Reference != constant.Empty {
		parsed, err := time.Parse(constant.DateFormat, req.Reference)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("reference must be an RFC 3339 timestamp"))

			return
		}

		reference = timezone.ToAppTime(parsed)
	}

	weekdays := make([]time.Weekday, 0, len(req.Weekdays))

	for _, name := range req.Weekdays {
		day, err := timezone.ParseWeekday(name)
		if err != nil {
			response.WithError(w, failure.BadRequest(err))

			return
		}

		weekdays = append(weekdays, day)
	}

	slots, err := h.svc.SuggestSlots(
		r.Context(), reference, req.DurationMinutes, model.AudienceFilter(req.Audience), weekdays)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if slots == nil {
		slots = []dto.Slot{}
	}

	response.WithJSON(w, http.StatusOK, dto.SuggestSlotsResponse{Slots: slots})
}

func parseWindow(start, end string) (model.Window, error) {
	startAt, err := time.Parse(constant.DateFormat, start)
	if err != nil {
		return model.Window{}, failure.BadRequestFromString("start must be an RFC 3339 timestamp") //nolint:wrapcheck
	}

	endAt, err := time.Parse(constant.DateFormat, end)
	if err != nil {
		return model.Window{}, failure.BadRequestFromString("end must be an RFC 3339 timestamp") //nolint:wrapcheck
	}

	return model.NewWindow(timezone.ToAppTime(startAt), timezone.ToAppTime(endAt))
}
