package dto

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams shapes a repository read. Lists and items are always read whole.
type QueryParams struct {
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// SortedBy returns params ordered by column in the given direction.
func SortedBy(column, dir string) QueryParams {
	return QueryParams{SortBy: column, SortDir: dir}
}
