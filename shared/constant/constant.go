package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
)

const (
	RoleAdmin     = "admin"
	RoleOrganiser = "organiser"
)

// SystemCreator marks reservations written by batch jobs rather than a person.
const SystemCreator = "system"

const (
	RequestParamID  = "id"
	RequestParamTag = "tag"
)

// AudienceAll is the sentinel tag meaning "applies to every cohort".
const AudienceAll = "All"

// Operating hours for slot suggestion, local time.
const (
	OperatingHourStart    = 9
	PreferredWindowEnd    = 15
	BufferWindowEnd       = 16
	SlotStepMinutes       = 30
	SuggestionHorizonDays = 8
	MaxSuggestions        = 2
)

// RetentionWindow is how long after creation a transient booking
// may still be self-cancelled.
const RetentionWindow = 48 * time.Hour

// MaxDocumentBytes caps uploaded timetable documents.
const MaxDocumentBytes = 5 << 20 // 5 MB

const DefaultDurationMinutes = 60

const (
	DateFormat      = time.RFC3339
	DayFormat       = "2006-01-02"
	ClockFormat     = "15:04"
	DisplayClock    = "03:04 PM"
	DisplaySlot     = "Monday, 02 Jan | 03:04 PM"
	RecurrenceUntil = "20060102T150405Z"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"
	FormFile        = "file"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const Empty = ""
