package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// Forbidden returns a new Failure with code for requests the caller may not perform.
func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// PermissionDenied is raised when a cancellation is requested by someone who is
// neither the creator of the booking nor an admin. The message names the owner
// so the caller understands whose booking it is.
func PermissionDenied(owner string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: fmt.Sprintf("only the original creator (%s) or an admin may cancel this booking", owner),
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", entityName),
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// RetentionExpired is raised when a cancellation arrives after the free
// cancellation window has closed.
func RetentionExpired(msg string) error {
	return &Failure{
		Code:    http.StatusGone,
		Message: msg,
	}
}

// QuotaExceeded is raised when an external oracle keeps rate-limiting us
// after the bounded retry loop has been exhausted.
func QuotaExceeded(msg string) error {
	return &Failure{
		Code:    http.StatusTooManyRequests,
		Message: msg,
	}
}

// StoreUnavailable wraps a transport-level failure talking to the calendar
// store. It is distinct from "no conflicts found": a query failure must never
// be silently converted into an empty result.
func StoreUnavailable(err error) error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: fmt.Sprintf("calendar store unreachable: %v", err),
	}
}

// InvariantViolation marks an attempt to write into a forbidden storage
// target. This indicates a configuration bug, not a runtime condition.
func InvariantViolation(msg string) error {
	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsStoreUnavailable reports whether err carries the store-unreachable code.
func IsStoreUnavailable(err error) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code == http.StatusServiceUnavailable
	}

	return false
}
