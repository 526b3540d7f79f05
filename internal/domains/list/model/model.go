package model

const (
	TableName  = "lists"
	EntityName = "list"

	FieldSlug = "slug"
	FieldName = "name"
)

type List struct {
	Slug string `db:"slug"`
	Name string `db:"name"`
}
