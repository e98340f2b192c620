package main

import (
	"github.com/rs/zerolog/log"

	"aula/config"
	"aula/di"
	"aula/shared/logger"
)

func main() {
	logger.InitLogger()

	if err := config.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	server := di.InitializeServer()
	server.Serve()
}
