package routes

import (
	"github.com/dukerupert/gamestore/internal/router"
)

// RegisterStorefrontRoutes registers the server-rendered storefront.
// Form actions redirect back to the cart section of the home page.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	if deps.Static != nil {
		r.Static("/static/", deps.Static)
	}

	// Home page. {$} keeps it from matching every path.
	r.Get("/{$}", deps.HomeHandler.ServeHTTP)

	// Cart form actions
	r.Post("/cart/add", deps.CartHandler.FormAdd)
	r.Post("/cart/remove", deps.CartHandler.FormRemove)
	r.Post("/cart/checkout", deps.CartHandler.FormCheckout)
	r.Post("/cart/promo", deps.CartHandler.FormPromo, optional(deps.PromoLimiter)...)

	r.NotFound(deps.HomeHandler.NotFound)
}

// optional drops a nil middleware so callers can leave it unset.
func optional(m router.Middleware) []router.Middleware {
	if m == nil {
		return nil
	}
	return []router.Middleware{m}
}
