package routes

import (
	"io/fs"
	"net/http"

	"github.com/dukerupert/gamestore/internal/handler/storefront"
	"github.com/dukerupert/gamestore/internal/router"
)

// StorefrontDeps contains dependencies for the HTML storefront routes
type StorefrontDeps struct {
	// Home page and the not-found fallback
	HomeHandler *storefront.HomeHandler

	// Cart form actions (POST-redirect-GET)
	CartHandler *storefront.CartHandler

	// PromoLimiter throttles promo code attempts. Optional.
	PromoLimiter router.Middleware

	// Static assets served under /static/
	Static fs.FS
}

// APIDeps contains dependencies for the JSON API routes
type APIDeps struct {
	CatalogHandler *storefront.CatalogHandler
	CartHandler    *storefront.CartHandler

	// PromoLimiter throttles promo code attempts. Optional.
	PromoLimiter router.Middleware
}

// OpsDeps contains dependencies for operational endpoints
type OpsDeps struct {
	HealthHandler  http.HandlerFunc
	MetricsHandler http.Handler
}
