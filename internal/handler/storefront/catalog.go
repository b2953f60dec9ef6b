package storefront

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/handler"
)

// CatalogHandler serves the item list and the informational panels.
type CatalogHandler struct {
	catalog domain.Catalog
	faq     []domain.FAQItem
	support domain.SupportInfo
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog domain.Catalog, faq []domain.FAQItem, support domain.SupportInfo) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		faq:     faq,
		support: support,
	}
}

// List handles GET /api/catalog
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": h.catalog.List(),
	})
}

// Get handles GET /api/catalog/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("catalog.get", "Item id must be an integer"))
		return
	}

	item, err := h.catalog.Get(id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, item)
}

// FAQ handles GET /api/faq
func (h *CatalogHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": h.faq,
	})
}

// Support handles GET /api/support
func (h *CatalogHandler) Support(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, h.support)
}
