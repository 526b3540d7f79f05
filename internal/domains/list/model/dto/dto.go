package dto

import (
	itemModel "listo/internal/domains/item/model"
	itemDto "listo/internal/domains/item/model/dto"
	"listo/internal/domains/list/model"
	"strings"
)

// CreateListRequest carries the raw text body of POST /api/lists.
type CreateListRequest struct {
	Name string `json:"name" validate:"notblank"`
}

func (c *CreateListRequest) ToModel(slug string) model.List {
	return model.List{
		Slug: slug,
		Name: strings.TrimSpace(c.Name),
	}
}

type RenameListRequest struct {
	Name string `db:"name" json:"name" validate:"notblank"`
}

type ListResponse struct {
	Slug  string                 `json:"slug"`
	Name  string                 `json:"name"`
	Items []itemDto.ItemResponse `json:"items"`
}

// AllResponse maps every list slug to the list and its items.
type AllResponse map[string]ListResponse

// FromModels groups items under their lists. Every list gets a non-nil item slice.
// Items of a list keep the order they are given in.
func (r *AllResponse) FromModels(lists []model.List, items []itemModel.Item) {
	res := make(AllResponse, len(lists))

	for _, list := range lists {
		res[list.Slug] = ListResponse{
			Slug:  list.Slug,
			Name:  list.Name,
			Items: []itemDto.ItemResponse{},
		}
	}

	for _, item := range items {
		list, ok := res[item.List]
		if !ok {
			continue
		}

		var itemRes itemDto.ItemResponse
		itemRes.FromModel(item)

		list.Items = append(list.Items, itemRes)
		res[item.List] = list
	}

	*r = res
}
