package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listo/helper"
	"listo/infras/otel/mocks"
	itemModel "listo/internal/domains/item/model"
	itemRepository "listo/internal/domains/item/repository"
	"listo/internal/domains/list/model"
	"listo/internal/domains/list/repository"
	"listo/shared"
	gDto "listo/shared/dto"
	gRepo "listo/shared/repository"
)

func TestListRepository(t *testing.T) {
	conn, err := helper.NewMemoryConnection()
	require.NoError(t, err)

	defer conn.Close()

	ctx := context.Background()
	lists := repository.New(conn, mocks.NewOtel())
	items := itemRepository.New(conn, mocks.NewOtel())

	require.NoError(t, lists.Insert(ctx, model.List{Slug: "groceries", Name: "Groceries"}))
	require.NoError(t, lists.Insert(ctx, model.List{Slug: "chores", Name: "Chores"}))

	t.Run("duplicate slug is a unique violation", func(t *testing.T) {
		err := lists.Insert(ctx, model.List{Slug: "groceries", Name: "Other"})
		require.Error(t, err)
		assert.True(t, gRepo.IsUniqueViolation(err))
		assert.False(t, gRepo.IsForeignKeyViolation(err))
	})

	t.Run("exist and filtered read", func(t *testing.T) {
		filter := shared.FilterByID("groceries", model.FieldSlug, model.TableName)

		exist, err := lists.Exist(ctx, filter)
		require.NoError(t, err)
		assert.True(t, exist)

		found, err := lists.GetAll(ctx, gDto.QueryParams{}, filter)
		require.NoError(t, err)
		assert.Equal(t, []model.List{{Slug: "groceries", Name: "Groceries"}}, found)

		missing, err := lists.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID("nowhere", model.FieldSlug, model.TableName))
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("rename keeps the slug", func(t *testing.T) {
		filter := shared.FilterByID("chores", model.FieldSlug, model.TableName)

		require.NoError(t, lists.Update(ctx, map[string]any{model.FieldName: "House"}, filter))

		all, err := lists.GetAll(ctx, gDto.SortedBy(model.FieldSlug, gDto.SortDirAsc), gDto.FilterGroup{})
		require.NoError(t, err)
		assert.Equal(t, []model.List{
			{Slug: "chores", Name: "House"},
			{Slug: "groceries", Name: "Groceries"},
		}, all)
	})

	t.Run("delete with items leaves no orphans", func(t *testing.T) {
		_, err := items.InsertReturning(ctx, itemModel.Item{List: "groceries", Text: "Milk", CreatedAt: 1})
		require.NoError(t, err)
		_, err = items.InsertReturning(ctx, itemModel.Item{List: "groceries", Text: "Bread", CreatedAt: 2})
		require.NoError(t, err)
		_, err = items.InsertReturning(ctx, itemModel.Item{List: "chores", Text: "Dishes", CreatedAt: 3})
		require.NoError(t, err)

		require.NoError(t, lists.DeleteWithItems(ctx, "groceries"))

		remaining, err := items.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "chores", remaining[0].List)

		exist, err := lists.Exist(ctx, shared.FilterByID("groceries", model.FieldSlug, model.TableName))
		require.NoError(t, err)
		assert.False(t, exist)
	})

	t.Run("deleting a missing list succeeds", func(t *testing.T) {
		assert.NoError(t, lists.DeleteWithItems(ctx, "groceries"))
	})
}
