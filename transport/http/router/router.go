package router

import (
	"listo/config"
	_ "listo/docs" //nolint:revive
	"listo/internal/handlers/item"
	"listo/internal/handlers/list"
	"listo/internal/handlers/shell"
	"listo/transport/http/middleware"
	"listo/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	List  list.Handler
	Item  item.Handler
	Shell shell.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
	Config         *config.Config
}

// SetupRoutes mounts the API under /api, the docs under /swagger and hands every
// other path to the shell.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.Middleware.RequestID)
	router.Use(r.Middleware.Logger)
	router.Use(r.Middleware.Tracing)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(r.Middleware.RateLimit())

	router.Route("/api", func(routerGroup chi.Router) {
		// Set before the handlers mount their groups so the groups inherit them.
		routerGroup.NotFound(routeNotFound)
		routerGroup.MethodNotAllowed(routeNotFound)

		r.DomainHandlers.List.Router(routerGroup)
		r.DomainHandlers.Item.Router(routerGroup)
	})

	if r.Config.App.Swagger.Enable {
		router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	r.DomainHandlers.Shell.Router(router)
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	response.WithRouteNotFound(w)
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     appMiddleware,
		Config:         cfg,
	}
}
