package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"listo/infras/database"
	"listo/infras/otel"
	itemModel "listo/internal/domains/item/model"
	"listo/internal/domains/list/model"
	"listo/shared"
	"listo/shared/constant"
	gDto "listo/shared/dto"
	"listo/shared/logger"
	gRepo "listo/shared/repository"
)

type List interface {
	Insert(ctx context.Context, model model.List) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.List, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	DeleteWithItems(ctx context.Context, slug string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.List]
	items gRepo.Repository[itemModel.Item]
	db    *database.Connection
	otel  otel.Otel
}

func New(db *database.Connection, otel otel.Otel) List {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.List](model.EntityName, model.TableName, model.FieldSlug, db, otel),
		items:      gRepo.NewRepository[itemModel.Item](itemModel.EntityName, itemModel.TableName, itemModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DeleteWithItems removes the list and every item on it in one transaction.
func (r *repositoryImpl) DeleteWithItems(ctx context.Context, slug string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".list.DeleteWithItems")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	err = r.items.DeleteTx(ctx, tx, shared.FilterByID(slug, itemModel.FieldList, itemModel.TableName))
	if err != nil {
		return err
	}

	err = r.DeleteTx(ctx, tx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit list deletion: %w", err)
	}

	return nil
}
