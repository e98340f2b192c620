package dto

import (
	"aula/internal/domains/reservation/model"
	scheduleDTO "aula/internal/domains/schedule/model/dto"
	"aula/shared/constant"
)

const (
	StatusBooked   = "booked"
	StatusConflict = "conflict"
)

type CreateReservationRequest struct {
	Summary        string   `json:"summary" validate:"required,max=200"`
	Start          string   `json:"start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	End            string   `json:"end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	TargetAudience []string `json:"targetAudience" validate:"max=16,dive,min=1,max=32"`
}

type ReservationResponse struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Partition   string `json:"partition"`
	AudienceTag string `json:"audienceTag"`
	Creator     string `json:"creator"`
	CreatedAt   string `json:"createdAt"`
}

func NewReservationResponse(res model.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          res.ID,
		Summary:     res.Summary,
		Start:       res.Window.Start.Format(constant.DateFormat),
		End:         res.Window.End.Format(constant.DateFormat),
		Partition:   string(res.Partition),
		AudienceTag: res.AudienceTag,
		Creator:     res.Creator,
		CreatedAt:   res.CreatedAt.Format(constant.DateFormat),
	}
}

// BookResponse carries either the created reservation or, on rejection, the
// blocking conflicts plus alternative slots. A rejection is a result, not an
// error.
type BookResponse struct {
	Status      string                        `json:"status"`
	Reservation *ReservationResponse          `json:"reservation,omitempty"`
	Conflicts   []scheduleDTO.ConflictReport  `json:"conflicts,omitempty"`
	Suggestions []scheduleDTO.Slot            `json:"suggestions,omitempty"`
}

type CleanupResponse struct {
	Removed int `json:"removed"`
}
