package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"aula/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "BadRequestFromString",
			err:  failure.BadRequestFromString("bad window"),
			code: http.StatusBadRequest,
		},
		{
			name: "Unauthorized",
			err:  failure.Unauthorized("missing token"),
			code: http.StatusUnauthorized,
		},
		{
			name: "PermissionDenied",
			err:  failure.PermissionDenied("owner@campus.edu"),
			code: http.StatusForbidden,
		},
		{
			name: "NotFound",
			err:  failure.NotFound("reservation"),
			code: http.StatusNotFound,
		},
		{
			name: "Conflict",
			err:  failure.Conflict("window already booked"),
			code: http.StatusConflict,
		},
		{
			name: "RetentionExpired",
			err:  failure.RetentionExpired("48-hour cancellation window has passed"),
			code: http.StatusGone,
		},
		{
			name: "QuotaExceeded",
			err:  failure.QuotaExceeded("oracle quota exhausted"),
			code: http.StatusTooManyRequests,
		},
		{
			name: "StoreUnavailable",
			err:  failure.StoreUnavailable(errors.New("dial tcp: timeout")),
			code: http.StatusServiceUnavailable,
		},
		{
			name: "InvariantViolation",
			err:  failure.InvariantViolation("refusing to write into the primary calendar"),
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}

func TestPermissionDeniedNamesOwner(t *testing.T) {
	err := failure.PermissionDenied("owner@campus.edu")
	if err == nil {
		t.Fatal("expected an error")
	}

	if want := "only the original creator (owner@campus.edu) or an admin may cancel this booking"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestIsStoreUnavailable(t *testing.T) {
	if !failure.IsStoreUnavailable(failure.StoreUnavailable(errors.New("boom"))) {
		t.Error("expected StoreUnavailable to be detected")
	}

	if failure.IsStoreUnavailable(failure.NotFound("nope")) {
		t.Error("NotFound should not be detected as StoreUnavailable")
	}

	if failure.IsStoreUnavailable(errors.New("plain")) {
		t.Error("plain error should not be detected as StoreUnavailable")
	}
}

func TestGetCodeDefaultsToInternalError(t *testing.T) {
	if got := failure.GetCode(errors.New("plain error")); got != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, got)
	}
}
