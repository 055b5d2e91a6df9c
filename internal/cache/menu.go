package cache

import (
	"context"
	"time"

	"github.com/geocoder89/hallulies/internal/domain/menu"
)

type MenuStore interface {
	ListActive(ctx context.Context) ([]menu.Item, error)
	ListActiveByCategory(ctx context.Context, category string) ([]menu.Item, error)
	Create(ctx context.Context, req menu.CreateRequest) (menu.Item, error)
	GetByID(ctx context.Context, id int64) (menu.Item, error)
	Update(ctx context.Context, id int64, p menu.Patch) (menu.Item, error)
	Deactivate(ctx context.Context, id int64) error
}

const allItemsKey = "\x00all"

// Menu serves the public menu lists from memory. Any write through it drops
// every cached list; writes from other processes show up after the TTL.
// Empty category lists are not cached, so unknown categories cost a query
// but no memory.
type Menu struct {
	MenuStore
	lists *TTL[[]menu.Item]
}

func NewMenu(inner MenuStore, ttl time.Duration) *Menu {
	return &Menu{MenuStore: inner, lists: NewTTL[[]menu.Item](ttl, DefaultMaxKeys)}
}

func (m *Menu) ListActive(ctx context.Context) ([]menu.Item, error) {
	return m.cached(allItemsKey, true, func() ([]menu.Item, error) {
		return m.MenuStore.ListActive(ctx)
	})
}

func (m *Menu) ListActiveByCategory(ctx context.Context, category string) ([]menu.Item, error) {
	return m.cached(category, false, func() ([]menu.Item, error) {
		return m.MenuStore.ListActiveByCategory(ctx, category)
	})
}

func (m *Menu) Create(ctx context.Context, req menu.CreateRequest) (menu.Item, error) {
	defer m.lists.Clear()
	return m.MenuStore.Create(ctx, req)
}

func (m *Menu) Update(ctx context.Context, id int64, p menu.Patch) (menu.Item, error) {
	defer m.lists.Clear()
	return m.MenuStore.Update(ctx, id, p)
}

func (m *Menu) Deactivate(ctx context.Context, id int64) error {
	defer m.lists.Clear()
	return m.MenuStore.Deactivate(ctx, id)
}

func (m *Menu) cached(key string, keepEmpty bool, load func() ([]menu.Item, error)) ([]menu.Item, error) {
	if items, ok := m.lists.Get(key); ok {
		return items, nil
	}

	// a write that lands while we load must win over what we read
	gen := m.lists.Generation()

	items, err := load()
	if err != nil {
		return nil, err
	}

	if len(items) > 0 || keepEmpty {
		m.lists.SetIfGeneration(key, items, gen)
	}
	return items, nil
}
