package model

// Metadata is the document-level context the extraction oracle reads off a
// timetable: which cohort the document is for.
type Metadata struct {
	Semester string `json:"semester"`
	Branch   string `json:"branch"`
}

// Event is one extracted timetable entry. Times are local wall-clock strings
// ("HH:MM") and Day is an English weekday name; anchoring them to concrete
// dates happens at sync time, not extraction time.
type Event struct {
	Summary     string `json:"summary"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
}

// Timetable is the structured form of an uploaded timetable document.
type Timetable struct {
	Metadata Metadata `json:"metadata"`
	Events   []Event  `json:"events"`
}
