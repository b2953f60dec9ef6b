// Package promo validates promo codes against a fixed registry and tracks how
// many times each code has been activated.
package promo

import (
	"fmt"
	"strings"

	"github.com/dukerupert/gamestore/internal/domain"
)

// Sentinel errors. Apply wraps them with request details; match with errors.Is.
var (
	ErrUnknownCode = &domain.Error{Code: domain.ENOTFOUND, Message: "Invalid promo code"}
	ErrExhausted   = &domain.Error{Code: domain.ECONFLICT, Message: "Promo code exhausted"}
)

// DefaultCodes returns the promo codes the store ships with.
func DefaultCodes() []domain.PromoCode {
	return []domain.PromoCode{
		{Code: "PROMOMILLION", DiscountPercent: 50, MaxActivations: 10},
		{Code: "FRIDAY", DiscountPercent: 10, MaxActivations: 100},
		{Code: "PODAROK", DiscountPercent: 30, MaxActivations: 50},
	}
}

// Registry is the immutable set of known promo codes.
type Registry struct {
	codes     map[string]domain.PromoCode
	order     []string
	trimInput bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithTrimInput controls whether leading and trailing whitespace is stripped
// from shopper input before normalization. Off by default.
func WithTrimInput(trim bool) Option {
	return func(r *Registry) {
		r.trimInput = trim
	}
}

// NewRegistry validates codes and builds a registry keyed by the
// uppercase code.
func NewRegistry(codes []domain.PromoCode, opts ...Option) (*Registry, error) {
	r := &Registry{
		codes: make(map[string]domain.PromoCode, len(codes)),
		order: make([]string, 0, len(codes)),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, c := range codes {
		key := strings.ToUpper(c.Code)
		if key == "" {
			return nil, fmt.Errorf("promo code must not be empty")
		}
		if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
			return nil, fmt.Errorf("promo code %s: discount %d%% outside [0,100]", key, c.DiscountPercent)
		}
		if c.MaxActivations <= 0 {
			return nil, fmt.Errorf("promo code %s: max activations must be positive, got %d", key, c.MaxActivations)
		}
		if _, dup := r.codes[key]; dup {
			return nil, fmt.Errorf("promo code %s: duplicate", key)
		}
		c.Code = key
		r.codes[key] = c
		r.order = append(r.order, key)
	}

	return r, nil
}

// DefaultRegistry builds a registry from DefaultCodes.
func DefaultRegistry(opts ...Option) *Registry {
	r, err := NewRegistry(DefaultCodes(), opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Normalize maps shopper input to a registry key.
func (r *Registry) Normalize(raw string) string {
	if r.trimInput {
		raw = strings.TrimSpace(raw)
	}
	return strings.ToUpper(raw)
}

// Lookup returns the entry for an already-normalized code.
func (r *Registry) Lookup(code string) (domain.PromoCode, bool) {
	c, ok := r.codes[code]
	return c, ok
}

// DiscountPercent returns the discount for code, or 0 when code is empty
// or unknown.
func (r *Registry) DiscountPercent(code string) int {
	if code == "" {
		return 0
	}
	return r.codes[code].DiscountPercent
}

// Codes returns every registry entry in registration order.
func (r *Registry) Codes() []domain.PromoCode {
	out := make([]domain.PromoCode, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.codes[key])
	}
	return out
}

// Apply validates raw against the registry and consumes one activation from
// ledger. On failure nothing in the ledger changes.
func (r *Registry) Apply(raw string, ledger *Ledger) (domain.PromoCode, error) {
	const op = "promo.apply"

	code := r.Normalize(raw)
	entry, ok := r.codes[code]
	if !ok {
		return domain.PromoCode{}, &domain.Error{
			Code:    domain.ENOTFOUND,
			Op:      op,
			Message: ErrUnknownCode.Message,
			Err:     ErrUnknownCode,
		}
	}

	used, ok := ledger.activate(entry.Code, entry.MaxActivations)
	if !ok {
		return domain.PromoCode{}, &domain.Error{
			Code:    domain.ECONFLICT,
			Op:      op,
			Message: fmt.Sprintf("%s (%d/%d)", ErrExhausted.Message, used, entry.MaxActivations),
			Err:     ErrExhausted,
		}
	}

	return entry, nil
}
