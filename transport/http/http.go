package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"aula/config"
	"aula/transport/http/middleware"
	"aula/transport/http/response"
	"aula/transport/http/router"
)

// ServerState is the state of the server. Used for health checks during the
// shutdown sequence.
type ServerState int

const (
	// ServerStateReady indicates that the server is ready to serve.
	ServerStateReady ServerState = iota + 1
	// ServerStateInGracePeriod indicates that the server is in its grace
	// period before shutting down.
	ServerStateInGracePeriod
	// ServerStateInCleanupPeriod indicates that the server has stopped
	// serving requests and is cleaning up internally.
	ServerStateInCleanupPeriod
)

type HTTP struct {
	config *config.Config
	router *router.Router
	app    *middleware.App
	limit  *middleware.Limiter
	state  ServerState
	mux    *chi.Mux
}

func NewHTTP(cfg *config.Config, rt *router.Router, app *middleware.App, limit *middleware.Limiter) *HTTP {
	return &HTTP{
		config: cfg,
		router: rt,
		app:    app,
		limit:  limit,
	}
}

// Serve starts listening and blocks until shutdown completes.
func (h *HTTP) Serve() {
	h.setup()

	addr := fmt.Sprintf("%s:%s", h.config.Server.Host, h.config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           h.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	h.state = ServerStateReady

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	h.shutdown(server)
}

func (h *HTTP) setup() {
	mux := chi.NewRouter()

	mux.Use(h.app.Recover)
	mux.Use(h.app.Log)
	mux.Use(h.app.Trace)

	if h.config.App.CORS.Enable {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.App.CORS.AllowedOrigins,
			AllowedMethods:   h.config.App.CORS.AllowedMethods,
			AllowedHeaders:   h.config.App.CORS.AllowedHeaders,
			AllowCredentials: h.config.App.CORS.AllowCredentials,
			MaxAge:           h.config.App.CORS.MaxAgeSeconds,
		}))
	}

	mux.Use(h.limit.Limit)
	mux.Use(h.rejectDuringShutdown)

	h.router.SetupRoutes(mux)

	h.mux = mux
}

// rejectDuringShutdown turns new requests away once the grace period begins,
// so load balancers drain the instance before it stops.
func (h *HTTP) rejectDuringShutdown(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.state > ServerStateReady {
			response.WithPreparingShutdown(w)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *HTTP) shutdown(server *http.Server) {
	grace := time.Duration(h.config.Server.Shutdown.GracePeriodSeconds) * time.Second
	cleanup := time.Duration(h.config.Server.Shutdown.CleanupPeriodSeconds) * time.Second

	h.state = ServerStateInGracePeriod
	log.Info().Dur("grace", grace).Msg("Shutdown requested, entering grace period")
	time.Sleep(grace)

	h.state = ServerStateInCleanupPeriod
	ctx, cancel := context.WithTimeout(context.Background(), cleanup)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown after cleanup period")
	}

	log.Info().Msg("HTTP server stopped")
}
