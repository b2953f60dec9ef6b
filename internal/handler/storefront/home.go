package storefront

import (
	"net/http"
	"strings"

	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/handler"
	"github.com/dukerupert/gamestore/internal/middleware"
)

// HomeHandler renders the single-page storefront.
type HomeHandler struct {
	catalog     domain.Catalog
	cartService domain.CartService
	renderer    *handler.Renderer
	faq         []domain.FAQItem
	support     domain.SupportInfo
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(
	catalog domain.Catalog,
	cartService domain.CartService,
	renderer *handler.Renderer,
	faq []domain.FAQItem,
	support domain.SupportInfo,
) *HomeHandler {
	return &HomeHandler{
		catalog:     catalog,
		cartService: cartService,
		renderer:    renderer,
		faq:         faq,
		support:     support,
	}
}

// ServeHTTP handles GET /
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := currentSession(r)

	summary, err := h.cartService.GetCartSummary(ctx, token)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var pending []domain.Notification
	if token != "" {
		pending, err = h.cartService.TakeNotifications(ctx, token)
		if err != nil {
			// Toasts are cosmetic; render the page without them.
			middleware.GetLogger(ctx).Warn("failed to drain notifications", "error", err)
		}
	}

	data := BaseTemplateData(r)
	data.Items = h.catalog.List()
	data.Cart = summary
	data.Notifications = pending
	data.FAQ = h.faq
	data.Support = h.support

	h.renderer.RenderHTTP(w, r, http.StatusOK, "index", data)
}

// NotFound renders the 404 page for browsers and a JSON error otherwise.
func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Accept"), "text/html") {
		handler.NotFoundResponse(w, r)
		return
	}

	data := BaseTemplateData(r)
	h.renderer.RenderHTTP(w, r, http.StatusNotFound, "not_found", data)
}
