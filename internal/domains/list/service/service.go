package service

import (
	"context"
	"errors"
	"fmt"
	"listo/config"
	"listo/infras/otel"
	itemModel "listo/internal/domains/item/model"
	itemRepository "listo/internal/domains/item/repository"
	"listo/internal/domains/list/model"
	"listo/internal/domains/list/model/dto"
	"listo/internal/domains/list/repository"
	"listo/shared"
	"listo/shared/cache"
	"listo/shared/constant"
	gDto "listo/shared/dto"
	"listo/shared/failure"
	gRepo "listo/shared/repository"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	errMsgListNotFound = "list not found"
	errMsgSlugTaken    = "could not find a free slug for this name"
)

type List interface {
	GetAll(ctx context.Context) (dto.AllResponse, error)
	Create(ctx context.Context, req dto.CreateListRequest) (string, error)
	Rename(ctx context.Context, slug string, req dto.RenameListRequest) error
	Delete(ctx context.Context, slug string) error
}

type serviceImpl struct {
	repo     repository.List
	itemRepo itemRepository.Item
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.List, itemRepo itemRepository.Item, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) List {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// GetAll returns every list with its items, oldest item first.
func (s *serviceImpl) GetAll(ctx context.Context) (res dto.AllResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".list.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, constant.CacheKeyAll, &res)
	if err == nil {
		scope.AddEvent(constant.OtelEventCacheHit)
		log.Debug().Str("cacheKey", constant.CacheKeyAll).Msg("cache hit for all lists")

		return res, nil
	}

	if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("cacheKey", constant.CacheKeyAll).Msg("failed to read lists from cache")
	}

	// Read before loading so a mutation that lands meanwhile stops the snapshot being saved.
	generation, genErr := s.cache.Generation(ctx, constant.CacheKeyAll)

	lists, err := s.repo.GetAll(ctx, gDto.SortedBy(model.FieldSlug, gDto.SortDirAsc), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get lists")

		return nil, failure.StoreError("failed to load lists", err) // nolint:wrapcheck
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.SortedBy(itemModel.FieldCreatedAt, gDto.SortDirAsc), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get items")

		return nil, failure.StoreError("failed to load lists", err) // nolint:wrapcheck
	}

	res.FromModels(lists, items)

	if !s.saveSnapshot(ctx, res, generation, genErr) {
		scope.AddEvent(constant.OtelEventCacheSkipped)
	}

	return res, nil
}

// saveSnapshot caches res unless the lists were invalidated after generation was read.
func (s *serviceImpl) saveSnapshot(ctx context.Context, res dto.AllResponse, generation int64, genErr error) bool {
	if genErr != nil {
		log.Warn().Err(genErr).Str("cacheKey", constant.CacheKeyAll).Msg("cache generation unknown, not caching lists")

		return false
	}

	err := s.cache.SaveAt(ctx, constant.CacheKeyAll, res, s.cfg.Cache.TTL, generation)
	if errors.Is(err, cache.ErrStale) {
		log.Debug().Str("cacheKey", constant.CacheKeyAll).Msg("lists changed while loading, not caching")

		return false
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to save lists to cache")

		return false
	}

	return true
}

// Create stores a new list under a slug derived from its name. A taken slug gets a
// random numeric suffix; after SlugMaxRetry attempts the request fails with a conflict.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateListRequest) (slug string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".list.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	base := shared.Slugify(req.Name)
	slug = base

	for attempt := range constant.SlugMaxRetry {
		scope.SetAttribute(constant.OtelSlugAttemptsAttributeKey, attempt+1)

		exist, err := s.repo.Exist(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("slug", slug).Msg("failed to check if list exists")

			return "", failure.StoreError("failed to create list", err) // nolint:wrapcheck
		}

		if !exist {
			err = s.repo.Insert(ctx, req.ToModel(slug))
			if err == nil {
				scope.SetList(slug)
				shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyAll)

				return slug, nil
			}

			if !gRepo.IsUniqueViolation(err) {
				log.Error().Err(err).Str("slug", slug).Msg("failed to create list")

				return "", failure.StoreError("failed to create list", err) // nolint:wrapcheck
			}
		}

		scope.AddEvent(constant.OtelEventSlugTaken)
		log.Debug().Str("slug", slug).Msg("slug taken, retrying with suffix")

		slug = fmt.Sprintf("%s%s%d", base, constant.SlugSeparator, rand.IntN(constant.SlugSuffixMax)) //nolint:gosec
	}

	log.Warn().Str("base", base).Msg("gave up looking for a free slug")

	return "", failure.Conflict(errMsgSlugTaken) // nolint:wrapcheck
}

// Rename changes the display name. The slug never changes.
func (s *serviceImpl) Rename(ctx context.Context, slug string, req dto.RenameListRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".list.Rename")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetList(slug)

	filter := shared.FilterByID(slug, model.FieldSlug, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to check if list exists")

		return failure.StoreError("failed to rename list", err) // nolint:wrapcheck
	}

	if !exist {
		return failure.NotFound(errMsgListNotFound) // nolint:wrapcheck
	}

	req.Name = strings.TrimSpace(req.Name)

	if err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to rename list")

		return failure.StoreError("failed to rename list", err) // nolint:wrapcheck
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyAll)

	return nil
}

// Delete removes the list and its items. Deleting a missing list succeeds.
func (s *serviceImpl) Delete(ctx context.Context, slug string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".list.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetList(slug)

	if err = s.repo.DeleteWithItems(ctx, slug); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to delete list")

		return failure.StoreError("failed to delete list", err) // nolint:wrapcheck
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyAll)

	return nil
}
