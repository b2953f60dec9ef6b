package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CartService provides business logic for shopping cart operations.
// Every method is scoped to one shopper session identified by token.
type CartService interface {
	// GetOrCreateSession returns token when it names a live session,
	// otherwise starts a new session and returns its token.
	GetOrCreateSession(ctx context.Context, token string) (string, error)

	// GetCartSummary retrieves the cart with entries and calculated totals.
	GetCartSummary(ctx context.Context, token string) (*CartSummary, error)

	// AddItem appends a snapshot of the catalog item to the cart.
	AddItem(ctx context.Context, token string, itemID int) (*CartSummary, error)

	// RemoveItem removes the entry at the given position.
	RemoveItem(ctx context.Context, token string, index int) (*CartSummary, error)

	// ApplyPromoCode validates the code and makes it the session's applied promo.
	ApplyPromoCode(ctx context.Context, token string, code string) (*CartSummary, error)

	// Totals recomputes subtotal, discount and total for the session.
	Totals(ctx context.Context, token string) (*Totals, error)

	// TakeNotifications drains the session's pending notifications.
	TakeNotifications(ctx context.Context, token string) ([]Notification, error)

	// Checkout is a stub; it always fails with ENOTIMPL.
	Checkout(ctx context.Context, token string) error
}

// CartEntry is a by-value snapshot of a catalog item taken when it was added.
// Two additions of the same item produce two independent entries.
type CartEntry struct {
	CatalogItem
}

// Totals is the derived price breakdown of a cart.
type Totals struct {
	Subtotal        int64           `json:"subtotal"`
	DiscountPercent int             `json:"discount_percent"`
	Total           decimal.Decimal `json:"total"`
}

// CartSummary aggregates cart entries with calculated totals.
type CartSummary struct {
	Items        []CartEntry `json:"items"`
	ItemCount    int         `json:"item_count"`
	AppliedPromo string      `json:"applied_promo,omitempty"`
	Totals       Totals      `json:"totals"`

	// CanCheckout mirrors the Pay button: disabled on an empty cart.
	CanCheckout bool `json:"can_checkout"`

	// Notifications produced by the request that returned this summary.
	Notifications []Notification `json:"notifications,omitempty"`
}
