//go:build wireinject
// +build wireinject

package di

import (
	"listo/config"
	"listo/infras/database"
	"listo/infras/otel"
	"listo/infras/redis"
	itemHandler "listo/internal/handlers/item"
	listHandler "listo/internal/handlers/list"
	shellHandler "listo/internal/handlers/shell"
	"listo/shared/cache"
	"listo/transport/http"
	"listo/transport/http/middleware"
	"listo/transport/http/router"
	"listo/web"

	itemRepository "listo/internal/domains/item/repository"
	itemService "listo/internal/domains/item/service"
	listRepository "listo/internal/domains/list/repository"
	listService "listo/internal/domains/list/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	database.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var listDomain = wire.NewSet(
	listRepository.New,
	listService.New,
)

var itemDomain = wire.NewSet(
	itemRepository.New,
	itemService.New,
)

var domains = wire.NewSet(
	listDomain,
	itemDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	web.Dist,
	listHandler.New,
	itemHandler.New,
	shellHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
