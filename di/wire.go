//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"aula/config"
	"aula/infras/gemini"
	"aula/infras/jwt"
	"aula/infras/otel"
	"aula/infras/postgres"
	"aula/infras/redis"
	"aula/infras/s3"
	assistantOracle "aula/internal/domains/assistant/oracle"
	assistantService "aula/internal/domains/assistant/service"
	reservationRepository "aula/internal/domains/reservation/repository"
	reservationService "aula/internal/domains/reservation/service"
	scheduleService "aula/internal/domains/schedule/service"
	synclogRepository "aula/internal/domains/synclog/repository"
	timetableOracle "aula/internal/domains/timetable/oracle"
	timetableService "aula/internal/domains/timetable/service"
	assistantHandler "aula/internal/handlers/assistant"
	healthHandler "aula/internal/handlers/health"
	reservationHandler "aula/internal/handlers/reservation"
	scheduleHandler "aula/internal/handlers/schedule"
	timetableHandler "aula/internal/handlers/timetable"
	"aula/shared/cache"
	transportHTTP "aula/transport/http"
	"aula/transport/http/middleware"
	"aula/transport/http/router"
)

// InitializeServer assembles the HTTP server with every dependency wired.
func InitializeServer() *transportHTTP.HTTP {
	wire.Build(
		config.Get,
		otel.New,
		redis.New,
		cache.NewRedisCache,
		postgres.New,
		jwt.New,
		gemini.New,
		s3.New,

		reservationRepository.New,
		synclogRepository.NewBatchRepository,

		scheduleService.NewSchedule,
		reservationService.NewReservation,
		timetableOracle.NewExtractor,
		timetableService.NewTimetable,
		assistantOracle.NewInterpreter,
		assistantService.NewAssistant,

		healthHandler.New,
		reservationHandler.New,
		scheduleHandler.New,
		timetableHandler.New,
		assistantHandler.New,
		wire.Struct(new(router.DomainHandlers), "*"),

		middleware.NewApp,
		middleware.NewAuth,
		middleware.NewLimiter,
		router.NewRouter,
		transportHTTP.NewHTTP,
	)

	return nil
}
