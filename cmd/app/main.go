package main

import (
	"listo/config"
	"listo/di"
	"listo/helper"
	"listo/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()

	if cfg.DB.AutoMigrate {
		if err := helper.Up(http.DB, cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations.")
		}
	}

	http.Serve()
}
