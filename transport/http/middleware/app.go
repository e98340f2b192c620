package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"aula/infras/otel"
	"aula/shared/constant"
	"aula/transport/http/response"
)

// App carries the request-scoped concerns every route gets: panic recovery,
// access logging and a trace span per request.
type App struct {
	otel otel.Otel
}

func NewApp(ot otel.Otel) *App {
	return &App{
		otel: ot,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (m *App) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Any("panic", rec).Str("path", r.URL.Path).Msg("recovered from panic")
				response.WithMessage(w, http.StatusInternalServerError, "INTERNAL SERVER ERROR")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (m *App) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("user_agent", r.Header.Get(constant.RequestHeaderUserAgent)).
			Msg("request")
	})
}

func (m *App) Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, r.Method+" "+r.URL.Path)
		defer scope.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
