package dto

import (
	synclogModel "aula/internal/domains/synclog/model"
	"aula/internal/domains/timetable/model"
	"aula/shared/constant"
)

const (
	EventStatusCreated = "created"
	EventStatusFailed  = "failed"
)

type PreviewRequest struct {
	FileName    string
	ContentType string
	Document    []byte `validate:"required,maxfilesize=5"`
}

// PreviewResponse is the extracted, normalized timetable shown to the admin
// before anything is written to the calendar.
type PreviewResponse struct {
	AudienceTag string        `json:"audienceTag"`
	Branch      string        `json:"branch"`
	SourceFile  string        `json:"sourceFile,omitempty"`
	ArchiveURL  string        `json:"archiveUrl,omitempty"`
	Events      []model.Event `json:"events"`
}

type SyncEvent struct {
	Summary     string `json:"summary" validate:"required,max=200"`
	Day         string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime   string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime     string `json:"endTime" validate:"required,datetime=15:04"`
	Description string `json:"description" validate:"max=500"`
}

type SyncRequest struct {
	AudienceTag   string      `json:"audienceTag" validate:"required,max=32"`
	Branch        string      `json:"branch" validate:"max=64"`
	SemesterStart string      `json:"semesterStart" validate:"required,datetime=2006-01-02"`
	SemesterEnd   string      `json:"semesterEnd" validate:"required,datetime=2006-01-02"`
	SourceFile    string      `json:"sourceFile" validate:"max=255"`
	ArchiveURL    string      `json:"archiveUrl" validate:"max=512"`
	Events        []SyncEvent `json:"events" validate:"required,min=1,max=200,dive"`
}

// EventResult reports the outcome for a single event of a sync batch. The
// batch keeps going when individual events fail.
type EventResult struct {
	Summary string `json:"summary"`
	Day     string `json:"day"`
	Status  string `json:"status"`
	EventID string `json:"eventId,omitempty"`
	Error   string `json:"error,omitempty"`
}

type SyncResponse struct {
	BatchID     string        `json:"batchId"`
	AudienceTag string        `json:"audienceTag"`
	Created     int           `json:"created"`
	Failed      int           `json:"failed"`
	Results     []EventResult `json:"results"`
}

type RollbackResponse struct {
	AudienceTag string `json:"audienceTag"`
	Removed     int    `json:"removed"`
}

type BatchResponse struct {
	ID           string `json:"id"`
	AudienceTag  string `json:"audienceTag"`
	Branch       string `json:"branch,omitempty"`
	SourceFile   string `json:"sourceFile,omitempty"`
	ArchiveURL   string `json:"archiveUrl,omitempty"`
	EventCount   int    `json:"eventCount"`
	Status       string `json:"status"`
	CreatedBy    string `json:"createdBy"`
	CreatedAt    string `json:"createdAt"`
	RolledBackAt string `json:"rolledBackAt,omitempty"`
}

func NewBatchResponse(batch synclogModel.Batch) BatchResponse {
	out := BatchResponse{
		ID:          batch.ID,
		AudienceTag: batch.AudienceTag,
		Branch:      batch.Branch,
		SourceFile:  batch.SourceFile,
		ArchiveURL:  batch.ArchiveURL,
		EventCount:  batch.EventCount,
		Status:      batch.Status,
		CreatedBy:   batch.CreatedBy,
		CreatedAt:   batch.CreatedAt.Format(constant.DateFormat),
	}

	if batch.RolledBackAt.Valid {
		out.RolledBackAt = batch.RolledBackAt.Time.Format(constant.DateFormat)
	}

	return out
}
