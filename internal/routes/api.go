package routes

import (
	"github.com/dukerupert/gamestore/internal/router"
)

// RegisterAPIRoutes registers the JSON API. Mutating cart routes create a
// session on demand and set the session cookie.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Catalog and help content
	r.Get("/api/catalog", deps.CatalogHandler.List)
	r.Get("/api/catalog/{id}", deps.CatalogHandler.Get)
	r.Get("/api/faq", deps.CatalogHandler.FAQ)
	r.Get("/api/support", deps.CatalogHandler.Support)

	// Cart
	r.Get("/api/cart", deps.CartHandler.Summary)
	r.Get("/api/cart/totals", deps.CartHandler.Totals)
	r.Post("/api/cart/items", deps.CartHandler.AddItem)
	r.Delete("/api/cart/items/{index}", deps.CartHandler.RemoveItem)
	r.Post("/api/cart/promo", deps.CartHandler.ApplyPromo, optional(deps.PromoLimiter)...)

	// Checkout is not available yet and always answers 501
	r.Post("/api/checkout", deps.CartHandler.Checkout)
}
