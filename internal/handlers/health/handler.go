package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aula/config"
	"aula/transport/http/response"
)

type Handler struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Handler {
	return &Handler{
		cfg: cfg,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/health", h.Check)
}

// Check reports liveness. It is registered outside the authenticated group
// so probes need no token.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	response.WithJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"name":   h.cfg.App.Name,
		"env":    h.cfg.Server.Env,
	})
}
