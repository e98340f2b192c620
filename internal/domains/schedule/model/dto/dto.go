package dto

import (
	"aula/internal/domains/reservation/model"
	"aula/shared/constant"
)

// ConflictReport describes one existing reservation that blocks a requested
// window, shaped for direct display.
type ConflictReport struct {
	Label       string `json:"label"`
	Partition   string `json:"partition"`
	AudienceTag string `json:"audienceTag,omitempty"`
	TimeRange   string `json:"timeRange"`
}

// Slot is one bookable opening offered by the suggester.
type Slot struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Display string `json:"display"`
}

func NewSlot(window model.Window) Slot {
	return Slot{
		Start:   window.Start.Format(constant.DateFormat),
		End:     window.End.Format(constant.DateFormat),
		Display: window.Start.Format(constant.DisplaySlot),
	}
}

type CheckConflictsRequest struct {
	Start    string   `json:"start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	End      string   `json:"end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Audience []string `json:"audience"`
}

type CheckConflictsResponse struct {
	Available bool             `json:"available"`
	Conflicts []ConflictReport `json:"conflicts"`
}

type SuggestSlotsRequest struct {
	Reference       string   `json:"reference" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DurationMinutes int      `json:"durationMinutes" validate:"required,gt=0,lte=420"`
	Audience        []string `json:"audience"`
	Weekdays        []string `json:"weekdays" validate:"dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}

type SuggestSlotsResponse struct {
	Slots []Slot `json:"slots"`
}
