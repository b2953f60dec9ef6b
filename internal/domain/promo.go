package domain

// PromoCode is a registry entry unlocking a percentage discount.
type PromoCode struct {
	// Code is the uppercase-normalized key.
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	MaxActivations  int    `json:"max_activations"`
}

// NotificationLevel is the visual severity of a toast.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationInfo    NotificationLevel = "info"
	NotificationError   NotificationLevel = "error"
)

// Notification is a transient user-visible message emitted by cart and
// promo operations.
type Notification struct {
	Level       NotificationLevel `json:"level"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
}
