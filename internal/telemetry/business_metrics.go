package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Promo application outcomes used as the "outcome" label.
const (
	PromoOutcomeApplied   = "applied"
	PromoOutcomeUnknown   = "unknown"
	PromoOutcomeExhausted = "exhausted"
)

// BusinessMetrics holds Prometheus metrics for storefront behaviour.
// A nil *BusinessMetrics is valid and records nothing.
type BusinessMetrics struct {
	// Sessions
	SessionsCreated prometheus.Counter
	SessionsExpired prometheus.Counter

	// Cart
	CartItemsAdded   *prometheus.CounterVec
	CartItemsRemoved prometheus.Counter
	CartRemoveFailed prometheus.Counter
	CartValue        prometheus.Histogram

	// Promo codes
	PromoApplications *prometheus.CounterVec

	// Checkout
	CheckoutAttempts prometheus.Counter
}

// NewBusinessMetrics creates business metrics and registers them with reg.
// A nil reg creates the collectors without registering them.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "gamestore"
	}

	subsystem := "business"
	factory := promauto.With(reg)

	return &BusinessMetrics{
		// =======================================================================
		// Sessions
		// =======================================================================
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sessions_created_total",
				Help:      "Total shopper sessions started",
			},
		),
		SessionsExpired: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sessions_expired_total",
				Help:      "Total shopper sessions removed after idling past the TTL",
			},
		),

		// =======================================================================
		// Cart
		// =======================================================================
		CartItemsAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total add to cart actions",
			},
			[]string{"item_id"},
		),
		CartItemsRemoved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_removed_total",
				Help:      "Total cart entries removed",
			},
		),
		CartRemoveFailed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_remove_failed_total",
				Help:      "Total removals rejected for an out-of-range index",
			},
		),
		CartValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_subtotal_rub",
				Help:      "Cart subtotal after each change, in rubles",
				Buckets:   []float64{0, 300, 600, 1000, 1500, 2500, 5000, 10000},
			},
		),

		// =======================================================================
		// Promo codes
		// =======================================================================
		PromoApplications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "promo_applications_total",
				Help:      "Promo code applications by code and outcome",
			},
			[]string{"code", "outcome"}, // code is "unknown" for unregistered input
		),

		// =======================================================================
		// Checkout
		// =======================================================================
		CheckoutAttempts: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_attempts_total",
				Help:      "Total Pay button presses",
			},
		),
	}
}

// RecordItemAdded counts an add to cart and the resulting subtotal.
func (m *BusinessMetrics) RecordItemAdded(itemID int, subtotal int64) {
	if m == nil {
		return
	}
	m.CartItemsAdded.WithLabelValues(strconv.Itoa(itemID)).Inc()
	m.CartValue.Observe(float64(subtotal))
}

// RecordItemRemoved counts a removal attempt.
func (m *BusinessMetrics) RecordItemRemoved(ok bool, subtotal int64) {
	if m == nil {
		return
	}
	if !ok {
		m.CartRemoveFailed.Inc()
		return
	}
	m.CartItemsRemoved.Inc()
	m.CartValue.Observe(float64(subtotal))
}

// RecordPromo counts a promo application. Unregistered input is reported
// under the "unknown" code to keep label cardinality bounded.
func (m *BusinessMetrics) RecordPromo(code, outcome string) {
	if m == nil {
		return
	}
	if outcome == PromoOutcomeUnknown {
		code = "unknown"
	}
	m.PromoApplications.WithLabelValues(code, outcome).Inc()
}

// RecordSessionCreated counts a new session.
func (m *BusinessMetrics) RecordSessionCreated() {
	if m == nil {
		return
	}
	m.SessionsCreated.Inc()
}

// RecordSessionsExpired counts swept sessions.
func (m *BusinessMetrics) RecordSessionsExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsExpired.Add(float64(n))
}

// RecordCheckoutAttempt counts a Pay press.
func (m *BusinessMetrics) RecordCheckoutAttempt() {
	if m == nil {
		return
	}
	m.CheckoutAttempts.Inc()
}

// ActiveSessionsGauge exposes the live session count via fn.
func ActiveSessionsGauge(namespace string, reg prometheus.Registerer, fn func() float64) prometheus.GaugeFunc {
	if namespace == "" {
		namespace = "gamestore"
	}
	return promauto.With(reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "sessions_active",
			Help:      "Shopper sessions currently held in memory",
		},
		fn,
	)
}
