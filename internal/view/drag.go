package view

import (
	"context"
	"fmt"
	"listo/internal/mirror"

	"github.com/rs/zerolog/log"
)

// Payload is what a dragged item carries. Both fields must be set for a drop to do anything.
type Payload struct {
	ItemID   int64
	FromList string
}

type Zone int

const (
	ZoneDelete Zone = iota
	ZoneEdit
)

func (z Zone) String() string {
	if z == ZoneEdit {
		return "Edit"
	}

	return "Delete"
}

// Reader looks items up in the mirror.
type Reader interface {
	Item(slug string, id int64) (mirror.Item, bool)
}

// Mover is the part of the mirror a drop can act on.
type Mover interface {
	Reader
	MoveItem(ctx context.Context, slug string, id int64, target string) error
	DeleteItem(ctx context.Context, slug string, id int64) error
}

func NewPayload(item mirror.Item) Payload {
	return Payload{ItemID: item.ID, FromList: item.List}
}

// PlainText renders item as a markdown task line for other applications.
func PlainText(item mirror.Item) string {
	box := " "
	if item.IsCompleted {
		box = "x"
	}

	return fmt.Sprintf("- [%s] %s", box, item.Text)
}

// Resolve returns the dragged item if it is still in the mirror.
func Resolve(reader Reader, payload Payload) (mirror.Item, bool) {
	if payload.ItemID == 0 || payload.FromList == "" {
		return mirror.Item{}, false
	}

	return reader.Item(payload.FromList, payload.ItemID)
}

// DropOnList moves the dragged item to target. A stale payload does nothing.
func DropOnList(ctx context.Context, m Mover, payload Payload, target string) error {
	item, ok := Resolve(m, payload)
	if !ok {
		log.Debug().Int64("id", payload.ItemID).Str("list", payload.FromList).Msg("ignoring drop of unknown item")

		return nil
	}

	return m.MoveItem(ctx, item.List, item.ID, target)
}

// DropOnZone deletes the dragged item or hands it back for editing. The bool reports
// whether the caller should open the editor.
func DropOnZone(ctx context.Context, m Mover, payload Payload, zone Zone) (mirror.Item, bool, error) {
	item, ok := Resolve(m, payload)
	if !ok {
		return mirror.Item{}, false, nil
	}

	if zone == ZoneEdit {
		return item, true, nil
	}

	return mirror.Item{}, false, m.DeleteItem(ctx, item.List, item.ID)
}
