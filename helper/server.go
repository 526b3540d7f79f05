package helper

import (
	"listo/config"
	"listo/infras/otel"
	itemRepository "listo/internal/domains/item/repository"
	itemService "listo/internal/domains/item/service"
	listRepository "listo/internal/domains/list/repository"
	listService "listo/internal/domains/list/service"
	"listo/internal/handlers/item"
	"listo/internal/handlers/list"
	"listo/internal/handlers/shell"
	"listo/shared/cache"
	"listo/transport/http/middleware"
	"listo/transport/http/router"
	"listo/web"

	transport "listo/transport/http"
)

// NewMemoryServer builds the full server on a fresh in-memory database, without
// Redis or a trace exporter. Close its DB when done.
func NewMemoryServer() (*transport.HTTP, error) {
	conn, err := NewMemoryConnection()
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.App.Name = "listo"
	cfg.Cache.TTL = 60

	ot := otel.New(cfg)
	redisCache := cache.NewRedisCache(nil, ot)

	listRepo := listRepository.New(conn, ot)
	itemRepo := itemRepository.New(conn, ot)

	handlers := router.DomainHandlers{
		List:  list.New(listService.New(listRepo, itemRepo, cfg, redisCache, ot), ot),
		Item:  item.New(itemService.New(itemRepo, listRepo, cfg, redisCache, ot), ot),
		Shell: shell.New(web.Dist()),
	}

	r := router.New(handlers, middleware.NewAppMiddleware(ot, cfg, redisCache), cfg)

	return transport.New(cfg, r, conn, ot), nil
}
