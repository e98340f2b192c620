package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"aula/shared/constant"
	"aula/shared/failure"
	"aula/shared/logger"
)

// Base is the envelope every JSON response uses.
type Base struct {
	Data    *any    `json:"data,omitempty"`
	Error   *string `json:"error,omitempty"`
	Message *string `json:"message,omitempty"`
}

// WithJSON sends a response containing a JSON payload.
func WithJSON(w http.ResponseWriter, code int, jsonPayload any) {
	respond(w, code, Base{Data: &jsonPayload})
}

// WithError sends a response with an error message, deriving the status code
// from the failure wrapped inside.
func WithError(w http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	if code == http.StatusInternalServerError {
		logger.ErrorWithStack(err)
	}

	respond(w, code, Base{Error: &errMsg})
}

// WithMessage sends a response with a simple text message.
func WithMessage(w http.ResponseWriter, code int, message string) {
	respond(w, code, Base{Message: &message})
}

// WithPreparingShutdown sends a default response for when the server is
// preparing to shut down.
func WithPreparingShutdown(w http.ResponseWriter) {
	WithMessage(w, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy.
func WithUnhealthy(w http.ResponseWriter) {
	WithMessage(w, http.StatusServiceUnavailable, "SERVER UNHEALTHY")
}

func respond(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
