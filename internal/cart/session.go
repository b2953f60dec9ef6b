// Package cart implements the shopper session: cart entries, the applied
// promo code, promo activation counters and pending notifications.
//
// Operations return the notification they produce. Only Notify queues one
// for the next page render.
//
// A Session is a plain value with no internal locking. Callers that share a
// Session between goroutines must serialize access; see service.SessionStore.
package cart

import (
	"fmt"

	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/pricing"
	"github.com/dukerupert/gamestore/internal/promo"
)

// ErrIndexOutOfRange is returned when removing a position the cart does not have.
var ErrIndexOutOfRange = &domain.Error{Code: domain.EINVALID, Message: "Cart index out of range"}

// ErrCheckoutNotImplemented is returned by Checkout; payments are not wired.
var ErrCheckoutNotImplemented = &domain.Error{Code: domain.ENOTIMPL, Message: "Payment is not available yet"}

// MaxPendingNotifications bounds the toast queue; the oldest are dropped first.
const MaxPendingNotifications = 5

// Session holds one shopper's cart state.
type Session struct {
	registry *promo.Registry
	ledger   *promo.Ledger

	entries []domain.CartEntry
	applied string
	pending []domain.Notification
}

// NewSession returns an empty session validating codes against registry.
// A nil ledger gives the session its own counters.
func NewSession(registry *promo.Registry, ledger *promo.Ledger) *Session {
	if ledger == nil {
		ledger = promo.NewLedger()
	}
	return &Session{
		registry: registry,
		ledger:   ledger,
	}
}

// AddItem appends a snapshot of item to the end of the cart.
func (s *Session) AddItem(item domain.CatalogItem) domain.Notification {
	s.entries = append(s.entries, domain.CartEntry{CatalogItem: item})

	return domain.Notification{
		Level:       domain.NotificationSuccess,
		Title:       "Added to cart!",
		Description: item.Title,
	}
}

// RemoveItem deletes the entry at index, keeping the order of the rest.
func (s *Session) RemoveItem(index int) (domain.Notification, error) {
	if index < 0 || index >= len(s.entries) {
		err := &domain.Error{
			Code:    domain.EINVALID,
			Op:      "cart.remove",
			Message: fmt.Sprintf("%s: %d (cart has %d items)", ErrIndexOutOfRange.Message, index, len(s.entries)),
			Err:     ErrIndexOutOfRange,
		}
		return ErrorNotification(err), err
	}

	s.entries = append(s.entries[:index:index], s.entries[index+1:]...)

	return domain.Notification{
		Level: domain.NotificationInfo,
		Title: "Removed from cart",
	}, nil
}

// ApplyPromoCode validates raw and, on success, makes it the applied promo.
// A previously applied code is replaced and its activation stays consumed.
func (s *Session) ApplyPromoCode(raw string) (domain.Notification, error) {
	entry, err := s.registry.Apply(raw, s.ledger)
	if err != nil {
		return ErrorNotification(err), err
	}

	s.applied = entry.Code

	return domain.Notification{
		Level: domain.NotificationSuccess,
		Title: fmt.Sprintf("Promo code applied! Discount %d%%", entry.DiscountPercent),
	}, nil
}

// NormalizePromoCode returns raw in the form the registry matches codes in.
func (s *Session) NormalizePromoCode(raw string) string {
	return s.registry.Normalize(raw)
}

// Totals recomputes the price breakdown.
func (s *Session) Totals(policy pricing.Rounding) domain.Totals {
	return pricing.ComputeTotals(s.entries, s.applied, s.registry, policy)
}

// Checkout always fails; the Pay button has no backend.
// The cart is left as is.
func (s *Session) Checkout() (domain.Notification, error) {
	err := &domain.Error{
		Code:    domain.ENOTIMPL,
		Op:      "cart.checkout",
		Message: ErrCheckoutNotImplemented.Message,
		Err:     ErrCheckoutNotImplemented,
	}
	return ErrorNotification(err), err
}

// Entries returns a copy of the cart in add order.
func (s *Session) Entries() []domain.CartEntry {
	out := make([]domain.CartEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Session) Len() int {
	return len(s.entries)
}

// AppliedPromo returns the applied code, or empty.
func (s *Session) AppliedPromo() string {
	return s.applied
}

// Activations reports the activation counter of every registry code.
func (s *Session) Activations() map[string]int {
	codes := s.registry.Codes()
	keys := make([]string, len(codes))
	for i, c := range codes {
		keys[i] = c.Code
	}
	return s.ledger.Snapshot(keys)
}

// Summary assembles the cart view used by handlers.
func (s *Session) Summary(policy pricing.Rounding) *domain.CartSummary {
	return &domain.CartSummary{
		Items:        s.Entries(),
		ItemCount:    len(s.entries),
		AppliedPromo: s.applied,
		Totals:       s.Totals(policy),
		CanCheckout:  len(s.entries) > 0,
	}
}

// DrainNotifications returns and clears the pending notifications.
func (s *Session) DrainNotifications() []domain.Notification {
	out := s.pending
	s.pending = nil
	return out
}

// Notify queues n for the next page render, dropping the oldest entries
// beyond MaxPendingNotifications.
func (s *Session) Notify(n domain.Notification) {
	s.pending = append(s.pending, n)
	if over := len(s.pending) - MaxPendingNotifications; over > 0 {
		s.pending = append(s.pending[:0:0], s.pending[over:]...)
	}
}

// ErrorNotification turns a failed operation into an error toast.
func ErrorNotification(err error) domain.Notification {
	return domain.Notification{
		Level: domain.NotificationError,
		Title: domain.ErrorMessage(err),
	}
}
