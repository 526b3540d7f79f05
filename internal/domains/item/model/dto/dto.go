package dto

import (
	"encoding/json"
	"listo/internal/domains/item/model"
	"math"
	"reflect"
)

type CreateItemRequest struct {
	List      *string `json:"list"       validate:"required"`
	Text      *string `json:"text"       validate:"required"`
	CreatedAt *int64  `json:"created_at" validate:"required"`
}

// UnmarshalJSON accepts any JSON number for created_at. Fractions of a millisecond are dropped.
func (c *CreateItemRequest) UnmarshalJSON(data []byte) error {
	var body struct {
		List      *string         `json:"list"`
		Text      *string         `json:"text"`
		CreatedAt json.RawMessage `json:"created_at"`
	}

	if err := json.Unmarshal(data, &body); err != nil {
		return err //nolint:wrapcheck
	}

	c.List = body.List
	c.Text = body.Text
	c.CreatedAt = nil

	if len(body.CreatedAt) == 0 || string(body.CreatedAt) == "null" {
		return nil
	}

	createdAt, ok := epochMillis(body.CreatedAt)
	if !ok {
		return &json.UnmarshalTypeError{
			Value: string(body.CreatedAt),
			Type:  reflect.TypeFor[float64](),
			Field: model.FieldCreatedAt,
		}
	}

	c.CreatedAt = &createdAt

	return nil
}

func epochMillis(raw json.RawMessage) (int64, bool) {
	var exact int64
	if err := json.Unmarshal(raw, &exact); err == nil {
		return exact, true
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return 0, false
	}

	ms = math.Floor(ms)
	if ms < math.MinInt64 || ms >= math.MaxInt64 {
		return 0, false
	}

	return int64(ms), true
}

func (c *CreateItemRequest) ToModel() model.Item {
	return model.Item{
		List:        *c.List,
		Text:        *c.Text,
		IsCompleted: false,
		CreatedAt:   *c.CreatedAt,
	}
}

// UpdateItemRequest is the effective part of a PATCH body. Unset fields are left alone.
type UpdateItemRequest struct {
	List        *string `db:"list"         json:"list,omitempty"`
	Text        *string `db:"text"         json:"text,omitempty"`
	IsCompleted *bool   `db:"is_completed" json:"is_completed,omitempty"`
}

// FromPatch keeps the allowed fields of patch whose JSON type matches. Anything else is dropped.
func (r *UpdateItemRequest) FromPatch(patch map[string]json.RawMessage) {
	r.List = decodeField[string](patch, model.FieldList)
	r.Text = decodeField[string](patch, model.FieldText)
	r.IsCompleted = decodeField[bool](patch, model.FieldIsCompleted)
}

func (r *UpdateItemRequest) IsEmpty() bool {
	return r.List == nil && r.Text == nil && r.IsCompleted == nil
}

func decodeField[T any](patch map[string]json.RawMessage, field string) *T {
	raw, ok := patch[field]
	if !ok || string(raw) == "null" {
		return nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}

	return &value
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	List        string `json:"list"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
	CreatedAt   int64  `json:"created_at"`
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.List = model.List
	r.Text = model.Text
	r.IsCompleted = model.IsCompleted
	r.CreatedAt = model.CreatedAt
}
