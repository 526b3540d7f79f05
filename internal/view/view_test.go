package view_test

import (
	"listo/internal/mirror"
	"listo/internal/view"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func items() []mirror.Item {
	return []mirror.Item{
		{ID: 1, Text: "Milk", CreatedAt: 30},
		{ID: 2, Text: "Eggs", CreatedAt: 10, IsCompleted: true},
		{ID: 3, Text: "Bread", CreatedAt: 20},
		{ID: 4, Text: "Butter", CreatedAt: 20},
	}
}

func ids(items []mirror.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}

	return out
}

func TestCompletedCount(t *testing.T) {
	assert.Equal(t, 1, view.CompletedCount(items()))
	assert.Zero(t, view.CompletedCount(nil))
	assert.Equal(t, "Show completed (1)", view.ShowCompletedLabel(items()))
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name          string
		showCompleted bool
		order         view.Order
		want          []int64
	}{
		{
			name:  "hides completed, oldest first",
			order: view.OldestFirst,
			want:  []int64{3, 4, 1},
		},
		{
			name:          "shows completed, oldest first",
			showCompleted: true,
			order:         view.OldestFirst,
			want:          []int64{2, 3, 4, 1},
		},
		{
			name:          "newest first keeps ties stable",
			showCompleted: true,
			order:         view.NewestFirst,
			want:          []int64{1, 3, 4, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := items()

			assert.Equal(t, tt.want, ids(view.Visible(in, tt.showCompleted, tt.order)))
			assert.Equal(t, []int64{1, 2, 3, 4}, ids(in))
		})
	}
}

func TestOrder(t *testing.T) {
	assert.Equal(t, view.NewestFirst, view.OldestFirst.Toggle())
	assert.Equal(t, view.OldestFirst, view.NewestFirst.Toggle())
	assert.Equal(t, "newest first", view.NewestFirst.String())
}

func TestTimeAgo(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	ms := now.UnixMilli()

	const (
		second = int64(1000)
		minute = 60 * second
		hour   = 60 * minute
		day    = 24 * hour
	)

	tests := []struct {
		name      string
		createdAt int64
		want      string
	}{
		{name: "same instant", createdAt: ms, want: "just now"},
		{name: "under a second", createdAt: ms - 999, want: "just now"},
		{name: "seconds", createdAt: ms - 5*second, want: "5 seconds ago"},
		{name: "one minute", createdAt: ms - 61*second, want: "1 minute ago"},
		{name: "rounds to nearest", createdAt: ms - 100*minute, want: "2 hours ago"},
		{name: "half rounds up", createdAt: ms - 90*minute, want: "1 hour ago"},
		{name: "days", createdAt: ms - 3*day, want: "3 days ago"},
		{name: "weeks", createdAt: ms - 15*day, want: "2 weeks ago"},
		{name: "months", createdAt: ms - 61*day, want: "2 months ago"},
		{name: "years", createdAt: ms - 400*day, want: "1 year ago"},
		{name: "exactly one second", createdAt: ms - second, want: "just now"},
		{name: "future from a skewed clock", createdAt: ms + 5*minute, want: "just now"},
		{name: "just ahead", createdAt: ms + 1500, want: "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view.TimeAgo(tt.createdAt, now))
		})
	}
}
