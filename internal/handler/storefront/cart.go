package storefront

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dukerupert/gamestore/internal/cookie"
	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/handler"
	"github.com/dukerupert/gamestore/internal/service"
)

// CartHandler handles the cart JSON API and the storefront form actions.
type CartHandler struct {
	cartService domain.CartService
	sessions    sessionIssuer
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService domain.CartService, cookies *cookie.Config) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		sessions: sessionIssuer{
			cartService: cartService,
			cookies:     cookies,
		},
	}
}

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	ItemID int `json:"item_id" validate:"required,gt=0"`
}

// ApplyPromoRequest is the body of POST /api/cart/promo.
type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

// =============================================================================
// JSON API
// =============================================================================

// Summary handles GET /api/cart
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cartService.GetCartSummary(r.Context(), currentSession(r))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// Totals handles GET /api/cart/totals
func (h *CartHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.cartService.Totals(r.Context(), currentSession(r))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, totals)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := handler.DecodeJSON(r, "cart.add", &req); err != nil {
		handler.ValidationErrorResponse(w, r, err)
		return
	}

	token, err := h.sessions.ensure(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.cartService.AddItem(r.Context(), token, req.ItemID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// RemoveItem handles DELETE /api/cart/items/{index}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("cart.remove", "Cart index must be an integer"))
		return
	}

	token, err := h.sessions.ensure(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.cartService.RemoveItem(r.Context(), token, index)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// ApplyPromo handles POST /api/cart/promo
func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req ApplyPromoRequest
	if err := handler.DecodeJSON(r, "cart.promo", &req); err != nil {
		handler.ValidationErrorResponse(w, r, err)
		return
	}

	token, err := h.sessions.ensure(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.cartService.ApplyPromoCode(r.Context(), token, req.Code)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// Checkout handles POST /api/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	err := h.cartService.Checkout(r.Context(), currentSession(r))
	if err == nil {
		// Unreachable until payments exist.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	handler.ErrorResponse(w, r, err)
}

// =============================================================================
// HTML form actions (POST-redirect-GET)
// =============================================================================

// FormAdd handles POST /cart/add
func (h *CartHandler) FormAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	itemID, err := strconv.Atoi(r.FormValue("item_id"))
	if err != nil || itemID <= 0 {
		http.Error(w, "Invalid item", http.StatusBadRequest)
		return
	}

	h.formAction(w, r, func(ctx context.Context, token string) error {
		_, err := h.cartService.AddItem(ctx, token, itemID)
		return err
	})
}

// FormRemove handles POST /cart/remove
func (h *CartHandler) FormRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Error(w, "Invalid cart position", http.StatusBadRequest)
		return
	}

	h.formAction(w, r, func(ctx context.Context, token string) error {
		_, err := h.cartService.RemoveItem(ctx, token, index)
		return err
	})
}

// FormPromo handles POST /cart/promo
func (h *CartHandler) FormPromo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	// Blank or oversized input is rejected by the registry like any other
	// unknown code, so the shopper still sees an error toast.
	code := r.FormValue("code")

	h.formAction(w, r, func(ctx context.Context, token string) error {
		_, err := h.cartService.ApplyPromoCode(ctx, token, code)
		return err
	})
}

// FormCheckout handles POST /cart/checkout
func (h *CartHandler) FormCheckout(w http.ResponseWriter, r *http.Request) {
	h.formAction(w, r, func(ctx context.Context, token string) error {
		return h.cartService.Checkout(ctx, token)
	})
}

// formAction runs op against the shopper's session and redirects back to the
// cart. Notifications are queued for the page the redirect lands on, so
// errors that became a toast are not fatal.
func (h *CartHandler) formAction(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, token string) error) {
	token, err := h.sessions.ensure(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	ctx := domain.NewContextWithQueuedNotifications(r.Context())
	if err := op(ctx, token); err != nil && !notifiedError(err) {
		handler.ErrorResponse(w, r, err)
		return
	}

	redirectToCart(w, r)
}

// notifiedError reports whether err was raised inside the session and so
// produced a notification for the next page render.
func notifiedError(err error) bool {
	return errors.Is(err, service.ErrIndexOutOfRange) ||
		errors.Is(err, service.ErrUnknownPromoCode) ||
		errors.Is(err, service.ErrPromoExhausted) ||
		errors.Is(err, service.ErrCheckoutNotImplemented)
}
