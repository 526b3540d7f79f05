//go:generate go run go.uber.org/mock/mockgen -source=./mirror.go -destination=./mocks/store_mock.go -package=mocks

// Package mirror keeps an in-memory copy of every list and item and routes all
// changes through the store so the copy follows the server.
package mirror

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	itemDto "listo/internal/domains/item/model/dto"
	listDto "listo/internal/domains/list/model/dto"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrListNotFound = errors.New("list not found")
	ErrItemNotFound = errors.New("item not found")
)

// Store is the server side of the mirror. *client.Client implements it.
type Store interface {
	GetAll(ctx context.Context) (listDto.AllResponse, error)
	CreateItem(ctx context.Context, req itemDto.CreateItemRequest) (int64, error)
	UpdateItem(ctx context.Context, id int64, req itemDto.UpdateItemRequest) error
	DeleteItem(ctx context.Context, id int64) error
	CreateList(ctx context.Context, name string) (string, error)
	RenameList(ctx context.Context, slug, name string) error
	DeleteList(ctx context.Context, slug string) error
}

type Item struct {
	ID          int64
	List        string
	Text        string
	IsCompleted bool
	CreatedAt   int64
}

type List struct {
	Slug  string
	Name  string
	Items []Item
}

type Option func(*Mirror)

// WithAlert sets the hook that tells the user about a failed action.
func WithAlert(alert func(message string)) Option {
	return func(m *Mirror) {
		m.alert = alert
	}
}

// WithClock replaces time.Now for item timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Mirror) {
		m.now = now
	}
}

type Mirror struct {
	store Store
	alert func(message string)
	now   func() time.Time

	mu     sync.RWMutex
	lists  map[string]*List
	loaded bool

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSub     int
}

func New(store Store, opts ...Option) *Mirror {
	m := &Mirror{
		store:       store,
		alert:       func(string) {},
		now:         time.Now,
		lists:       map[string]*List{},
		subscribers: map[int]func(){},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Load replaces the mirror with the server's lists. A canceled ctx returns its error without an alert.
func (m *Mirror) Load(ctx context.Context) error {
	all, err := m.store.GetAll(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}

		log.Error().Err(err).Msg("failed to load lists")
		m.alert(fmt.Sprintf("Failed to load lists: %v", err))

		return err
	}

	lists := make(map[string]*List, len(all))

	for slug, list := range all {
		items := make([]Item, 0, len(list.Items))
		for _, item := range list.Items {
			items = append(items, fromResponse(item))
		}

		lists[slug] = &List{Slug: list.Slug, Name: list.Name, Items: items}
	}

	m.mu.Lock()
	m.lists = lists
	m.loaded = true
	m.mu.Unlock()

	m.notify()

	return nil
}

// AddItem creates an item and appends it once the server has assigned an id.
func (m *Mirror) AddItem(ctx context.Context, slug, text string) (Item, error) {
	if !m.hasList(slug) {
		log.Warn().Str("list", slug).Msg("ignoring item add for unknown list")

		return Item{}, ErrListNotFound
	}

	item := Item{List: slug, Text: text, CreatedAt: m.now().UnixMilli()}

	id, err := m.store.CreateItem(ctx, itemDto.CreateItemRequest{
		List:      &item.List,
		Text:      &item.Text,
		CreatedAt: &item.CreatedAt,
	})
	if err != nil {
		m.fail(err, "Failed to add item")

		return Item{}, err
	}

	item.ID = id

	m.mu.Lock()
	if list, ok := m.lists[slug]; ok {
		list.Items = append(list.Items, item)
	}
	m.mu.Unlock()

	m.notify()

	return item, nil
}

// SetCompleted applies the new state before the server confirms it and restores
// the previous state when the server rejects it.
func (m *Mirror) SetCompleted(ctx context.Context, slug string, id int64, completed bool) error {
	m.mu.Lock()

	item := m.find(slug, id)
	if item == nil {
		m.mu.Unlock()
		log.Warn().Str("list", slug).Int64("id", id).Msg("ignoring toggle for unknown item")

		return ErrItemNotFound
	}

	previous := item.IsCompleted
	item.IsCompleted = completed
	m.mu.Unlock()

	m.notify()

	err := m.store.UpdateItem(ctx, id, itemDto.UpdateItemRequest{IsCompleted: &completed})
	if err == nil {
		return nil
	}

	m.mu.Lock()
	if item := m.findAnywhere(id); item != nil {
		item.IsCompleted = previous
	}
	m.mu.Unlock()

	m.fail(err, "Failed to complete/uncomplete item")
	m.notify()

	return err
}

func (m *Mirror) EditText(ctx context.Context, slug string, id int64, text string) error {
	if _, ok := m.Item(slug, id); !ok {
		return ErrItemNotFound
	}

	if err := m.store.UpdateItem(ctx, id, itemDto.UpdateItemRequest{Text: &text}); err != nil {
		m.fail(err, "Failed to edit item")

		return err
	}

	m.mu.Lock()
	if item := m.findAnywhere(id); item != nil {
		item.Text = text
	}
	m.mu.Unlock()

	m.notify()

	return nil
}

// MoveItem moves an item to another list. Moving to the list it is already in does nothing.
func (m *Mirror) MoveItem(ctx context.Context, slug string, id int64, target string) error {
	if _, ok := m.Item(slug, id); !ok {
		return ErrItemNotFound
	}

	if !m.hasList(target) {
		return ErrListNotFound
	}

	if slug == target {
		return nil
	}

	if err := m.store.UpdateItem(ctx, id, itemDto.UpdateItemRequest{List: &target}); err != nil {
		m.fail(err, "Failed to move item")

		return err
	}

	m.mu.Lock()
	if item, ok := m.remove(id); ok {
		if list, exists := m.lists[target]; exists {
			item.List = target
			list.Items = append(list.Items, item)
		}
	}
	m.mu.Unlock()

	m.notify()

	return nil
}

func (m *Mirror) DeleteItem(ctx context.Context, slug string, id int64) error {
	if err := m.store.DeleteItem(ctx, id); err != nil {
		m.fail(err, "Failed to delete item")

		return err
	}

	m.mu.Lock()
	_, removed := m.remove(id)
	m.mu.Unlock()

	if !removed {
		log.Debug().Str("list", slug).Int64("id", id).Msg("deleted item was not in the mirror")
	}

	m.notify()

	return nil
}

// AddList creates a list and returns its slug.
func (m *Mirror) AddList(ctx context.Context, name string) (string, error) {
	slug, err := m.store.CreateList(ctx, name)
	if err != nil {
		m.fail(err, "Failed to add list")

		return "", err
	}

	m.mu.Lock()
	m.lists[slug] = &List{Slug: slug, Name: strings.TrimSpace(name), Items: []Item{}}
	m.mu.Unlock()

	m.notify()

	return slug, nil
}

func (m *Mirror) RenameList(ctx context.Context, slug, name string) error {
	if !m.hasList(slug) {
		return ErrListNotFound
	}

	if err := m.store.RenameList(ctx, slug, name); err != nil {
		m.fail(err, "Failed to rename list")

		return err
	}

	m.mu.Lock()
	if list, ok := m.lists[slug]; ok {
		list.Name = strings.TrimSpace(name)
	}
	m.mu.Unlock()

	m.notify()

	return nil
}

// DeleteList removes the list and every item in it.
func (m *Mirror) DeleteList(ctx context.Context, slug string) error {
	if err := m.store.DeleteList(ctx, slug); err != nil {
		m.fail(err, "Failed to delete list")

		return err
	}

	m.mu.Lock()
	delete(m.lists, slug)
	m.mu.Unlock()

	m.notify()

	return nil
}

// Lists returns a copy of every list ordered by name, then slug.
func (m *Mirror) Lists() []List {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lists := make([]List, 0, len(m.lists))
	for _, list := range m.lists {
		lists = append(lists, clone(list))
	}

	slices.SortFunc(lists, func(a, b List) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.Slug, b.Slug),
		)
	})

	return lists
}

func (m *Mirror) List(slug string) (List, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list, ok := m.lists[slug]
	if !ok {
		return List{}, false
	}

	return clone(list), true
}

// Items returns a copy of the items of slug in server order, or nil for an unknown list.
func (m *Mirror) Items(slug string) []Item {
	list, ok := m.List(slug)
	if !ok {
		return nil
	}

	return list.Items
}

func (m *Mirror) Item(slug string, id int64) (Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item := m.find(slug, id)
	if item == nil {
		return Item{}, false
	}

	return *item, true
}

func (m *Mirror) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.loaded
}

// Subscribe registers fn to run after every change. The returned func removes it.
func (m *Mirror) Subscribe(fn func()) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()

		delete(m.subscribers, id)
	}
}

func (m *Mirror) notify() {
	m.subMu.Lock()
	subscribers := make([]func(), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subscribers = append(subscribers, fn)
	}
	m.subMu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

func (m *Mirror) fail(err error, action string) {
	log.Error().Err(err).Msg(strings.ToLower(action))
	m.alert(fmt.Sprintf("%s: %v", action, err))
}

func (m *Mirror) hasList(slug string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.lists[slug]

	return ok
}

// find must be called with mu held.
func (m *Mirror) find(slug string, id int64) *Item {
	list, ok := m.lists[slug]
	if !ok {
		return nil
	}

	for i := range list.Items {
		if list.Items[i].ID == id {
			return &list.Items[i]
		}
	}

	return nil
}

// findAnywhere must be called with mu held. The item may have moved since the caller looked it up.
func (m *Mirror) findAnywhere(id int64) *Item {
	for slug := range m.lists {
		if item := m.find(slug, id); item != nil {
			return item
		}
	}

	return nil
}

// remove must be called with mu held.
func (m *Mirror) remove(id int64) (Item, bool) {
	for _, list := range m.lists {
		for i, item := range list.Items {
			if item.ID == id {
				list.Items = slices.Delete(list.Items, i, i+1)

				return item, true
			}
		}
	}

	return Item{}, false
}

func clone(list *List) List {
	items := make([]Item, len(list.Items))
	copy(items, list.Items)

	return List{Slug: list.Slug, Name: list.Name, Items: items}
}

func fromResponse(item itemDto.ItemResponse) Item {
	return Item{
		ID:          item.ID,
		List:        item.List,
		Text:        item.Text,
		IsCompleted: item.IsCompleted,
		CreatedAt:   item.CreatedAt,
	}
}
