package router

import (
	"github.com/go-chi/chi/v5"

	assistantHandler "aula/internal/handlers/assistant"
	healthHandler "aula/internal/handlers/health"
	reservationHandler "aula/internal/handlers/reservation"
	scheduleHandler "aula/internal/handlers/schedule"
	timetableHandler "aula/internal/handlers/timetable"
	"aula/transport/http/middleware"
)

// DomainHandlers bundles every HTTP handler the router mounts.
type DomainHandlers struct {
	Health      *healthHandler.Handler
	Reservation *reservationHandler.Handler
	Schedule    *scheduleHandler.Handler
	Timetable   *timetableHandler.Handler
	Assistant   *assistantHandler.Handler
}

type Router struct {
	handlers DomainHandlers
	auth     *middleware.Auth
}

func NewRouter(handlers DomainHandlers, auth *middleware.Auth) *Router {
	return &Router{
		handlers: handlers,
		auth:     auth,
	}
}

// SetupRoutes mounts all routes. Health stays public; everything under /v1
// requires a valid bearer token.
func (r *Router) SetupRoutes(mux *chi.Mux) {
	r.handlers.Health.Router(mux)

	mux.Route("/v1", func(v chi.Router) {
		v.Use(r.auth.Authenticate)

		r.handlers.Reservation.Router(v, r.auth)
		r.handlers.Schedule.Router(v)
		r.handlers.Timetable.Router(v, r.auth)
		r.handlers.Assistant.Router(v)
	})
}
