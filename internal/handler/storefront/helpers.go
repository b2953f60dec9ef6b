package storefront

import (
	"net/http"

	"github.com/dukerupert/gamestore/internal/domain"
)

// PageData is passed to every storefront template.
type PageData struct {
	Items         []domain.CatalogItem
	Cart          *domain.CartSummary
	Notifications []domain.Notification
	FAQ           []domain.FAQItem
	Support       domain.SupportInfo
	RequestID     string
}

// BaseTemplateData returns common data for all templates
func BaseTemplateData(r *http.Request) PageData {
	return PageData{
		RequestID: domain.RequestIDFromContext(r.Context()),
	}
}

// cartAnchor is where form actions send the browser back to.
const cartAnchor = "/#cart"

func redirectToCart(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, cartAnchor, http.StatusSeeOther)
}
