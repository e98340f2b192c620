package model

import (
	"database/sql"
	"time"
)

const (
	StatusActive     = "active"
	StatusRolledBack = "rolled_back"
)

// Batch is one recorded timetable sync: which cohort it targeted, where the
// source document went, and whether the batch has since been rolled back.
type Batch struct {
	ID           string       `db:"id"`
	AudienceTag  string       `db:"audience_tag"`
	Branch       string       `db:"branch"`
	SourceFile   string       `db:"source_file"`
	ArchiveURL   string       `db:"archive_url"`
	EventCount   int          `db:"event_count"`
	Status       string       `db:"status"`
	CreatedBy    string       `db:"created_by"`
	CreatedAt    time.Time    `db:"created_at"`
	RolledBackAt sql.NullTime `db:"rolled_back_at"`
}
