package service

import (
	"context"
	"errors"

	"github.com/dukerupert/gamestore/internal/cart"
)

// Checkout records the attempt and fails with ErrCheckoutNotImplemented.
// The cart is left untouched so the shopper can retry once payments exist.
func (s *cartService) Checkout(ctx context.Context, token string) error {
	s.metrics.RecordCheckoutAttempt()

	var items int
	err := s.store.Update(ctx, token, func(sess *cart.Session) error {
		items = sess.Len()
		n, err := sess.Checkout()
		deliver(ctx, sess, n)
		return err
	})
	if errors.Is(err, ErrSessionNotFound) {
		err = ErrCheckoutNotImplemented
	}

	s.logger.InfoContext(ctx, "checkout attempted", "item_count", items)
	return err
}
