// Package catalog holds the storefront's fixed donation offerings together
// with the FAQ and support content shown alongside them.
package catalog

import (
	"fmt"
	"strconv"

	"github.com/dukerupert/gamestore/internal/domain"
)

// ErrItemNotFound is returned when an item id is not in the catalog.
var ErrItemNotFound = &domain.Error{Code: domain.ENOTFOUND, Message: "Item not found"}

const imageBase = "https://cdn.poehali.dev/projects/f950de63-ca9e-4820-8fbb-e922deb001c1/files/"

// DefaultItems returns the donation offerings sold by the store.
func DefaultItems() []domain.CatalogItem {
	return []domain.CatalogItem{
		{
			ID:          1,
			Title:       "Starter Pack",
			Description: "Basic resources to get your game going",
			Price:       299,
			Icon:        "Rocket",
			Image:       imageBase + "099b5b88-1f8b-4697-9bf2-8e9637f7fbc5.jpg",
		},
		{
			ID:          2,
			Title:       "VIP Status",
			Description: "Exclusive privileges for one month",
			Price:       999,
			Popular:     true,
			Icon:        "Crown",
			Image:       imageBase + "a391680d-60fa-4599-a984-25ce407f8c78.jpg",
		},
		{
			ID:          3,
			Title:       "Premium Bundle",
			Description: "Unique skins and items",
			Price:       1499,
			Icon:        "Sparkles",
			Image:       imageBase + "ec7a31e4-8d07-46ee-a439-5892f36e710f.jpg",
		},
		{
			ID:          4,
			Title:       "Currency x1000",
			Description: "1000 in-game coins",
			Price:       499,
			Icon:        "Coins",
			Image:       imageBase + "099b5b88-1f8b-4697-9bf2-8e9637f7fbc5.jpg",
		},
		{
			ID:          5,
			Title:       "Legendary Chest",
			Description: "A guaranteed legendary item",
			Price:       1999,
			Icon:        "Package",
			Image:       imageBase + "ec7a31e4-8d07-46ee-a439-5892f36e710f.jpg",
		},
		{
			ID:          6,
			Title:       "Monthly Donation",
			Description: "Daily bonuses for 30 days",
			Price:       599,
			Icon:        "Calendar",
			Image:       imageBase + "a391680d-60fa-4599-a984-25ce407f8c78.jpg",
		},
	}
}

// Catalog is an immutable, ordered list of items with lookup by id.
type Catalog struct {
	items []domain.CatalogItem
	index map[int]int
}

// New builds a catalog from items, rejecting duplicate or non-positive ids
// and non-positive prices.
func New(items []domain.CatalogItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]domain.CatalogItem, len(items)),
		index: make(map[int]int, len(items)),
	}
	copy(c.items, items)

	for i, item := range c.items {
		if item.ID <= 0 {
			return nil, fmt.Errorf("catalog item %q: id must be positive, got %d", item.Title, item.ID)
		}
		if item.Price <= 0 {
			return nil, fmt.Errorf("catalog item %d: price must be positive, got %d", item.ID, item.Price)
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, fmt.Errorf("catalog item %d: duplicate id", item.ID)
		}
		c.index[item.ID] = i
	}

	return c, nil
}

// Default returns the catalog built from DefaultItems.
func Default() *Catalog {
	c, err := New(DefaultItems())
	if err != nil {
		panic(err)
	}
	return c
}

// List returns the items in display order. The slice is a copy.
func (c *Catalog) List() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the item with the given id.
func (c *Catalog) Get(id int) (domain.CatalogItem, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.CatalogItem{}, &domain.Error{
			Code:    domain.ENOTFOUND,
			Op:      "catalog.get",
			Message: "Item not found: " + strconv.Itoa(id),
			Err:     ErrItemNotFound,
		}
	}
	return c.items[i], nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}
