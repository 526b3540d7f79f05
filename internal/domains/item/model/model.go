package model

const (
	TableName  = "items"
	EntityName = "item"

	FieldID          = "id"
	FieldList        = "list"
	FieldText        = "text"
	FieldIsCompleted = "is_completed"
	FieldCreatedAt   = "created_at"
)

// Item is a single to-do entry. CreatedAt is the client's clock in epoch milliseconds.
type Item struct {
	ID          int64  `db:"id" insert:"-"`
	List        string `db:"list"`
	Text        string `db:"text"`
	IsCompleted bool   `db:"is_completed"`
	CreatedAt   int64  `db:"created_at"`
}
