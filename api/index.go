package handler

import (
	"listo/config"
	"listo/di"
	"listo/helper"
	"listo/shared/logger"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	transport "listo/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler serves a single request. The server graph is built on the first call and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server = di.InitializeService()

		if cfg.DB.AutoMigrate {
			if err := helper.Up(server.DB, cfg); err != nil {
				log.Error().Err(err).Msg("Failed to run migrations.")
			}
		}
	})

	server.ServeHTTP(w, r)
}
