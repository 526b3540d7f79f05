package main

import (
	"listo/config"
	"listo/helper"
	"listo/infras/database"
	"listo/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	conn := database.New(cfg)
	defer conn.Close()

	var err error

	switch os.Args[1] {
	case helper.ActionUp:
		err = helper.Up(conn, cfg)
	case helper.ActionDown:
		err = helper.Down(conn, cfg)
	case helper.ActionDrop:
		err = helper.Drop(conn, cfg)
	case helper.ActionStepUp:
		err = helper.StepUp(conn, cfg)
	default:
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if err != nil {
		log.Fatal().Err(err).Str("direction", os.Args[1]).Msg("Migration failed")
	}
}
