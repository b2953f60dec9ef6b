package routes

import (
	"github.com/dukerupert/gamestore/internal/router"
)

// RegisterOpsRoutes registers health and metrics endpoints.
// /metrics has no auth; restrict it at the proxy in production.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/health", deps.HealthHandler)
	if deps.MetricsHandler != nil {
		r.Handle("GET", "/metrics", deps.MetricsHandler)
	}
}
