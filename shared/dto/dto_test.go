package dto_test

import (
	"listo/shared/dto"
	"strings"
	"testing"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equal with table",
			filter:    dto.Filter{Field: "list", Value: "groceries", Operator: dto.FilterOperatorEq, Table: "items"},
			wantWhere: "items.list = :list",
			wantArgs:  map[string]any{"list": "groceries"},
		},
		{
			name:      "equal with arg name",
			filter:    dto.Filter{ArgName: "target", Field: "slug", Value: "work", Operator: dto.FilterOperatorEq},
			wantWhere: "slug = :target",
			wantArgs:  map[string]any{"target": "work"},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "list", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for key, value := range tt.wantArgs {
				if args[key] != value {
					t.Errorf("expected arg %s to be %v, got %v", key, value, args[key])
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "list", Value: "groceries", Operator: dto.FilterOperatorEq, Table: "items"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "is_completed", Value: true, Operator: dto.FilterOperatorEq, Table: "items"},
					dto.Filter{Field: "created_at", Operator: "between", Table: "items"},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(items.list = :list AND (items.is_completed = :is_completed))"
	if where != expected {
		t.Errorf("expected %q, got %q", expected, where)
	}

	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()
	if where != "" {
		t.Errorf("expected empty where clause, got %q", where)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %d", len(args))
	}
}

func TestSortedBy(t *testing.T) {
	params := dto.SortedBy("created_at", dto.SortDirAsc)

	if params.SortBy != "created_at" || !strings.EqualFold(params.SortDir, "asc") {
		t.Errorf("unexpected params %+v", params)
	}
}
