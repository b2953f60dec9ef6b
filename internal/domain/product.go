package domain

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// CatalogItem is a purchasable donation offering.
// Items are defined at process start and never mutated afterwards.
type CatalogItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Price is a whole currency amount (rubles); there is no minor unit.
	Price int64 `json:"price"`

	// Icon is a symbolic tag consumed by presentation only.
	Icon  string `json:"icon"`
	Image string `json:"image,omitempty"`

	Popular bool `json:"popular,omitempty"`

	// Discount is reserved. Pricing ignores it.
	Discount int `json:"discount,omitempty"`
}

// FAQItem is one question/answer pair shown in the storefront accordion.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SupportInfo lists the channels shoppers can use to reach support.
type SupportInfo struct {
	Email    string `json:"email"`
	Telegram string `json:"telegram"`
	Hours    string `json:"hours"`
}

// Catalog provides read access to the fixed item list.
type Catalog interface {
	// List returns every item in display order.
	List() []CatalogItem

	// Get returns the item with id, or an ENOTFOUND error.
	Get(id int) (CatalogItem, error)
}
