package dto

import (
	scheduleDTO "aula/internal/domains/schedule/model/dto"
)

type PlanRequest struct {
	Message   string `json:"message" validate:"required,max=1000"`
	Reference string `json:"reference" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// PlanResponse pairs the interpreted intent with concrete openings, ready to
// hand to the booking endpoint.
type PlanResponse struct {
	Explanation     string             `json:"explanation"`
	EventName       string             `json:"eventName"`
	DurationMinutes int                `json:"durationMinutes"`
	TargetAudience  []string           `json:"targetAudience"`
	Suggestions     []scheduleDTO.Slot `json:"suggestions"`
}
