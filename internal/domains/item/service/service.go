package service

import (
	"context"
	"listo/config"
	"listo/infras/otel"
	"listo/internal/domains/item/model"
	"listo/internal/domains/item/model/dto"
	"listo/internal/domains/item/repository"
	listModel "listo/internal/domains/list/model"
	listRepository "listo/internal/domains/list/repository"
	"listo/shared"
	"listo/shared/cache"
	"listo/shared/constant"
	"listo/shared/failure"
	gRepo "listo/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	errMsgListNotFound = "list does not exist"
	errMsgItemNotFound = "item not found"
)

type Item interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (int64, error)
	Update(ctx context.Context, id int64, req dto.UpdateItemRequest) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo     repository.Item
	listRepo listRepository.List
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Item, listRepo listRepository.List, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Item {
	return &serviceImpl{
		repo:     repo,
		listRepo: listRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetList(*req.List)

	if err = s.checkList(ctx, *req.List); err != nil {
		return 0, err
	}

	id, err = s.repo.InsertReturning(ctx, req.ToModel())
	if gRepo.IsForeignKeyViolation(err) {
		return 0, failure.BadRequestFromString(errMsgListNotFound) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("list", *req.List).Msg("failed to create item")

		return 0, failure.StoreError("failed to create item", err) // nolint:wrapcheck
	}

	scope.SetItem(id)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyAll)

	return id, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateItemRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetItem(id)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to check if item exists")

		return failure.StoreError("failed to update item", err) // nolint:wrapcheck
	}

	if !exist {
		return failure.NotFound(errMsgItemNotFound) // nolint:wrapcheck
	}

	if req.IsEmpty() {
		return nil
	}

	if req.List != nil {
		scope.SetAttribute(constant.OtelTargetListAttributeKey, *req.List)

		if err = s.checkList(ctx, *req.List); err != nil {
			return err
		}
	}

	err = s.repo.Update(ctx, shared.TransformFields(req), filter)
	if gRepo.IsForeignKeyViolation(err) {
		return failure.BadRequestFromString(errMsgListNotFound) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update item")

		return failure.StoreError("failed to update item", err) // nolint:wrapcheck
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyAll)

	return nil
}

// Delete removes the item. Deleting a missing item succeeds.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetItem(id)

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete item")

		return failure.StoreError("failed to delete item", err) // nolint:wrapcheck
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyAll)

	return nil
}

func (s *serviceImpl) checkList(ctx context.Context, slug string) error {
	exist, err := s.listRepo.Exist(ctx, shared.FilterByID(slug, listModel.FieldSlug, listModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("list", slug).Msg("failed to check if list exists")

		return failure.StoreError("failed to check list", err) // nolint:wrapcheck
	}

	if !exist {
		return failure.BadRequestFromString(errMsgListNotFound) // nolint:wrapcheck
	}

	return nil
}
