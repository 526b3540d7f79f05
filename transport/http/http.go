package http

import (
	"context"
	"errors"
	"listo/config"
	"listo/infras/database"
	"listo/infras/otel"
	"listo/shared/constant"
	"listo/transport/http/response"
	"listo/transport/http/router"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 120 * time.Second
)

type HTTP struct {
	Config *config.Config
	Router router.Router
	DB     *database.Connection
	Otel   otel.Otel

	state     atomic.Int32
	mux       *chi.Mux
	server    *http.Server
	setupOnce sync.Once
}

type healthStatus struct {
	Status string `json:"status"`
	Driver string `json:"driver"`
}

func New(cfg *config.Config, r router.Router, db *database.Connection, ot otel.Otel) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
		DB:     db,
		Otel:   ot,
	}
}

// Serve listens until SIGINT or SIGTERM, then drains in a grace and a cleanup period.
func (h *HTTP) Serve() {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	done := make(chan struct{})
	go h.respondToSigterm(done)

	log.Info().Str("addr", h.server.Addr).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-done
}

// ServeHTTP lets the server run behind another http.Server or a serverless adaptor.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setup()
	h.mux.ServeHTTP(w, r)
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setup() {
	h.setupOnce.Do(func() {
		h.setupRoutes()
		h.state.Store(int32(ServerStateReady))
	})
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	h.Router.SetupRoutes(h.mux)
	h.mux.Get("/health", h.health)
}

func (h *HTTP) health(w http.ResponseWriter, r *http.Request) {
	switch h.State() {
	case ServerStateInGracePeriod, ServerStateInCleanupPeriod:
		response.WithPreparingShutdown(w)

		return
	}

	if err := h.DB.Write.PingContext(r.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed to reach database")
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, healthStatus{Status: "ok", Driver: h.DB.Driver})
}

func (h *HTTP) respondToSigterm(done chan struct{}) {
	serverStateCh := make(chan os.Signal, 1)
	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	<-serverStateCh

	defer close(done)

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		h.shutdown(context.Background())

		return
	}

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	h.shutdown(ctx)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) shutdown(ctx context.Context) {
	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server forced to shut down")
	}

	if err := h.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to flush traces")
	}

	if err := h.DB.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}
