package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dukerupert/gamestore/internal/cart"
	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/pricing"
	"github.com/dukerupert/gamestore/internal/telemetry"
	"github.com/getsentry/sentry-go"
	"github.com/shopspring/decimal"
)

type cartService struct {
	store    SessionStore
	catalog  domain.Catalog
	rounding pricing.Rounding
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

// NewCartService creates a CartService backed by store.
// metrics may be nil.
func NewCartService(
	store SessionStore,
	cat domain.Catalog,
	rounding pricing.Rounding,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) domain.CartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &cartService{
		store:    store,
		catalog:  cat,
		rounding: rounding,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetOrCreateSession returns token when it is live, otherwise a fresh token.
// A live session has its idle timer refreshed so the write that follows
// cannot find it expired.
func (s *cartService) GetOrCreateSession(ctx context.Context, token string) (string, error) {
	if token != "" {
		err := s.store.Update(ctx, token, func(*cart.Session) error { return nil })
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return "", err
		}
	}

	newToken, err := s.store.Create(ctx)
	if err != nil {
		return "", domain.WrapError(err, domain.EINTERNAL, "cart.session", "Failed to start session")
	}
	s.metrics.RecordSessionCreated()

	return newToken, nil
}

// GetCartSummary returns an empty summary for unknown or expired sessions.
func (s *cartService) GetCartSummary(ctx context.Context, token string) (*domain.CartSummary, error) {
	var summary *domain.CartSummary
	err := s.store.View(ctx, token, func(sess *cart.Session) error {
		summary = sess.Summary(s.rounding)
		return nil
	})
	if errors.Is(err, ErrSessionNotFound) {
		return emptySummary(), nil
	}
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// AddItem appends the catalog item with itemID to the session's cart.
func (s *cartService) AddItem(ctx context.Context, token string, itemID int) (*domain.CartSummary, error) {
	item, err := s.catalog.Get(itemID)
	if err != nil {
		return nil, err
	}

	var summary *domain.CartSummary
	err = s.store.Update(ctx, token, func(sess *cart.Session) error {
		n := sess.AddItem(item)
		deliver(ctx, sess, n)
		summary = sess.Summary(s.rounding)
		summary.Notifications = []domain.Notification{n}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordItemAdded(item.ID, summary.Totals.Subtotal)
	telemetry.AddBreadcrumb("cart", "item added", map[string]interface{}{
		"item_id": item.ID,
		"count":   summary.ItemCount,
	})
	s.logger.DebugContext(ctx, "item added to cart",
		"item_id", item.ID,
		"item_count", summary.ItemCount,
		"subtotal", summary.Totals.Subtotal,
	)

	return summary, nil
}

// RemoveItem removes the entry at index.
func (s *cartService) RemoveItem(ctx context.Context, token string, index int) (*domain.CartSummary, error) {
	var summary *domain.CartSummary
	err := s.store.Update(ctx, token, func(sess *cart.Session) error {
		n, err := sess.RemoveItem(index)
		deliver(ctx, sess, n)
		if err != nil {
			return err
		}
		summary = sess.Summary(s.rounding)
		summary.Notifications = []domain.Notification{n}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrIndexOutOfRange) {
			s.metrics.RecordItemRemoved(false, 0)
			s.logger.InfoContext(ctx, "cart remove rejected", "index", index, "error", err)
		}
		return nil, err
	}

	s.metrics.RecordItemRemoved(true, summary.Totals.Subtotal)
	s.logger.DebugContext(ctx, "item removed from cart",
		"index", index,
		"item_count", summary.ItemCount,
	)

	return summary, nil
}

// ApplyPromoCode validates code and makes it the session's applied promo.
func (s *cartService) ApplyPromoCode(ctx context.Context, token string, code string) (*domain.CartSummary, error) {
	var (
		summary    *domain.CartSummary
		normalized string
	)
	err := s.store.Update(ctx, token, func(sess *cart.Session) error {
		n, err := sess.ApplyPromoCode(code)
		deliver(ctx, sess, n)
		if err != nil {
			normalized = sess.NormalizePromoCode(code)
			return err
		}
		summary = sess.Summary(s.rounding)
		summary.Notifications = []domain.Notification{n}
		return nil
	})

	switch {
	case err == nil:
		s.metrics.RecordPromo(summary.AppliedPromo, telemetry.PromoOutcomeApplied)
		s.logger.InfoContext(ctx, "promo code applied",
			"code", summary.AppliedPromo,
			"discount_percent", summary.Totals.DiscountPercent,
		)
		return summary, nil
	case errors.Is(err, ErrUnknownPromoCode):
		s.metrics.RecordPromo("", telemetry.PromoOutcomeUnknown)
		s.logger.InfoContext(ctx, "unknown promo code", "error", err)
	case errors.Is(err, ErrPromoExhausted):
		// Only registered codes can be exhausted, so the label stays bounded.
		s.metrics.RecordPromo(normalized, telemetry.PromoOutcomeExhausted)
		s.logger.WarnContext(ctx, "promo code exhausted", "code", normalized)
		telemetry.CaptureMessage("promo code exhausted", sentry.LevelWarning, map[string]interface{}{
			"code": normalized,
		})
	}

	return nil, err
}

// Totals recomputes the session totals. Unknown sessions have zero totals.
func (s *cartService) Totals(ctx context.Context, token string) (*domain.Totals, error) {
	var totals domain.Totals
	err := s.store.View(ctx, token, func(sess *cart.Session) error {
		totals = sess.Totals(s.rounding)
		return nil
	})
	if errors.Is(err, ErrSessionNotFound) {
		return &domain.Totals{Total: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// TakeNotifications drains pending notifications for rendering.
func (s *cartService) TakeNotifications(ctx context.Context, token string) ([]domain.Notification, error) {
	var pending []domain.Notification
	err := s.store.View(ctx, token, func(sess *cart.Session) error {
		pending = sess.DrainNotifications()
		return nil
	})
	if errors.Is(err, ErrSessionNotFound) {
		return nil, nil
	}
	return pending, err
}

// deliver queues n in the session when the caller renders notifications on
// a later page instead of returning them.
func deliver(ctx context.Context, sess *cart.Session, n domain.Notification) {
	if domain.QueueNotifications(ctx) {
		sess.Notify(n)
	}
}

func emptySummary() *domain.CartSummary {
	return &domain.CartSummary{
		Items:  []domain.CartEntry{},
		Totals: domain.Totals{Total: decimal.Zero},
	}
}
