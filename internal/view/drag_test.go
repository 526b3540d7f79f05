package view_test

import (
	"context"
	itemDto "listo/internal/domains/item/model/dto"
	listDto "listo/internal/domains/list/model/dto"
	"listo/internal/mirror"
	"listo/internal/mirror/mocks"
	"listo/internal/view"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func loadedMirror(t *testing.T) (*mirror.Mirror, *mocks.MockStore) {
	t.Helper()

	store := mocks.NewMockStore(gomock.NewController(t))
	store.EXPECT().GetAll(gomock.Any()).Return(listDto.AllResponse{
		"groceries": {Slug: "groceries", Name: "Groceries", Items: []itemDto.ItemResponse{
			{ID: 1, List: "groceries", Text: "Milk", IsCompleted: true, CreatedAt: 1},
		}},
		"chores": {Slug: "chores", Name: "Chores", Items: []itemDto.ItemResponse{}},
	}, nil)

	m := mirror.New(store)
	require.NoError(t, m.Load(context.Background()))

	return m, store
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "- [x] Milk", view.PlainText(mirror.Item{Text: "Milk", IsCompleted: true}))
	assert.Equal(t, "- [ ] Eggs", view.PlainText(mirror.Item{Text: "Eggs"}))
}

func TestResolve(t *testing.T) {
	m, _ := loadedMirror(t)

	tests := []struct {
		name    string
		payload view.Payload
		found   bool
	}{
		{name: "present", payload: view.Payload{ItemID: 1, FromList: "groceries"}, found: true},
		{name: "missing list", payload: view.Payload{ItemID: 1}},
		{name: "missing id", payload: view.Payload{FromList: "groceries"}},
		{name: "stale list", payload: view.Payload{ItemID: 1, FromList: "chores"}},
		{name: "stale id", payload: view.Payload{ItemID: 7, FromList: "groceries"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := view.Resolve(m, tt.payload)

			assert.Equal(t, tt.found, ok)

			if tt.found {
				assert.Equal(t, "Milk", item.Text)
			}
		})
	}
}

func TestDropOnList(t *testing.T) {
	m, store := loadedMirror(t)

	move := "chores"
	store.EXPECT().UpdateItem(gomock.Any(), int64(1), itemDto.UpdateItemRequest{List: &move}).Return(nil)

	payload := view.NewPayload(m.Items("groceries")[0])

	require.NoError(t, view.DropOnList(context.Background(), m, payload, "chores"))
	assert.Len(t, m.Items("chores"), 1)

	require.NoError(t, view.DropOnList(context.Background(), m, payload, "chores"))
}

func TestDropOnZone(t *testing.T) {
	t.Run("edit hands the item back", func(t *testing.T) {
		m, _ := loadedMirror(t)

		item, edit, err := view.DropOnZone(context.Background(), m, view.Payload{ItemID: 1, FromList: "groceries"}, view.ZoneEdit)

		require.NoError(t, err)
		assert.True(t, edit)
		assert.Equal(t, int64(1), item.ID)
	})

	t.Run("delete", func(t *testing.T) {
		m, store := loadedMirror(t)
		store.EXPECT().DeleteItem(gomock.Any(), int64(1)).Return(nil)

		_, edit, err := view.DropOnZone(context.Background(), m, view.Payload{ItemID: 1, FromList: "groceries"}, view.ZoneDelete)

		require.NoError(t, err)
		assert.False(t, edit)
		assert.Empty(t, m.Items("groceries"))
	})

	t.Run("stale payload is a no-op", func(t *testing.T) {
		m, _ := loadedMirror(t)

		_, edit, err := view.DropOnZone(context.Background(), m, view.Payload{ItemID: 9, FromList: "groceries"}, view.ZoneDelete)

		require.NoError(t, err)
		assert.False(t, edit)
	})
}
