// Package view derives what the user sees from the mirror. It keeps no state of its own.
package view

import (
	"cmp"
	"fmt"
	"listo/internal/mirror"
	"math"
	"slices"
	"time"
)

type Order int

const (
	OldestFirst Order = iota
	NewestFirst
)

// RefreshInterval is how often relative timestamps are redrawn.
const RefreshInterval = 30 * time.Second

const EmptyState = "Choose a to-do list"

func (o Order) String() string {
	if o == NewestFirst {
		return "newest first"
	}

	return "oldest first"
}

// Toggle returns the other direction.
func (o Order) Toggle() Order {
	if o == NewestFirst {
		return OldestFirst
	}

	return NewestFirst
}

func CompletedCount(items []mirror.Item) int {
	count := 0

	for _, item := range items {
		if item.IsCompleted {
			count++
		}
	}

	return count
}

func ShowCompletedLabel(items []mirror.Item) string {
	return fmt.Sprintf("Show completed (%d)", CompletedCount(items))
}

// Visible drops completed items unless showCompleted is set and orders the rest by
// created_at. Items created at the same instant keep their relative order.
func Visible(items []mirror.Item, showCompleted bool, order Order) []mirror.Item {
	visible := make([]mirror.Item, 0, len(items))

	for _, item := range items {
		if item.IsCompleted && !showCompleted {
			continue
		}

		visible = append(visible, item)
	}

	slices.SortStableFunc(visible, func(a, b mirror.Item) int {
		if order == NewestFirst {
			return cmp.Compare(b.CreatedAt, a.CreatedAt)
		}

		return cmp.Compare(a.CreatedAt, b.CreatedAt)
	})

	return visible
}

var timeUnits = []struct {
	name    string
	seconds float64
}{
	{"year", 3600 * 24 * 365},
	{"month", 3600 * 24 * 30},
	{"week", 3600 * 24 * 7},
	{"day", 3600 * 24},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// TimeAgo renders createdAt (epoch ms) relative to now, e.g. "3 minutes ago".
// Anything less than a second old, or stamped in the future by a skewed clock, is "just now".
func TimeAgo(createdAt int64, now time.Time) string {
	elapsedMs := now.UnixMilli() - createdAt
	if elapsedMs < 1000 {
		return "just now"
	}

	elapsed := float64(elapsedMs) / 1000

	for _, unit := range timeUnits {
		if unit.seconds >= elapsed {
			continue
		}

		// Halves round toward the present: 90 minutes is "1 hour ago".
		count := -int64(math.Floor(-elapsed/unit.seconds + 0.5))
		if count != 1 {
			return fmt.Sprintf("%d %ss ago", count, unit.name)
		}

		return fmt.Sprintf("%d %s ago", count, unit.name)
	}

	return "just now"
}
