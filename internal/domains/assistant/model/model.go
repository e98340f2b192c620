package model

// Intent is the structured reading of a natural-language booking request.
type Intent struct {
	EventName       string   `json:"event_name"`
	DurationMinutes int      `json:"duration_minutes"`
	TargetSemesters []string `json:"target_semesters"`
	Weekdays        []string `json:"weekdays"`
}

// Interpretation is the oracle's full answer: the parsed intent plus a short
// human explanation of how the request was understood.
type Interpretation struct {
	Explanation string `json:"explanation"`
	Intent      Intent `json:"intent"`
}
