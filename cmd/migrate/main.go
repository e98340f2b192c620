package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"aula/config"
	"aula/helper"
	"aula/shared/logger"
)

func main() {
	logger.InitLogger()

	if err := config.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	cfg := config.Get()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		helper.MigrateUp(cfg)
	case "down":
		helper.MigrateDown(cfg)
	default:
		log.Fatal().Str("direction", direction).Msg("Unknown migration direction, use 'up' or 'down'")
	}
}
