package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/gamestore/internal/catalog"
	"github.com/dukerupert/gamestore/internal/cookie"
	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/handler"
	"github.com/dukerupert/gamestore/web"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *handler.Renderer {
	t.Helper()
	renderer, err := handler.NewRenderer(web.Templates())
	require.NoError(t, err)
	return renderer
}

func newTestHomeHandler(t *testing.T, svc domain.CartService) *HomeHandler {
	t.Helper()
	return NewHomeHandler(
		catalog.Default(),
		svc,
		newTestRenderer(t),
		catalog.FAQ(),
		catalog.NewSupportInfo("", "", ""),
	)
}

func TestHomeHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name          string
		sessionCookie string
		mock          *mockCartService
		contains      []string
		notContains   []string
	}{
		{
			name: "no session shows empty cart",
			mock: &mockCartService{
				takeNotificationsFunc: func(ctx context.Context, token string) ([]domain.Notification, error) {
					t.Error("no session means nothing to drain")
					return nil, nil
				},
			},
			contains: []string{
				"Starter Pack",
				"999 ₽",
				"1 999 ₽",
				"Popular",
				"Your cart is empty",
				"disabled>Pay</button>",
				"support@gamestore.ru",
				"@gamestore_support",
				"<details>",
			},
		},
		{
			name:          "cart with promo and toasts",
			sessionCookie: "tok",
			mock: &mockCartService{
				getCartSummaryFunc: func(ctx context.Context, token string) (*domain.CartSummary, error) {
					return &domain.CartSummary{
						Items: []domain.CartEntry{
							{CatalogItem: domain.CatalogItem{ID: 1, Title: "Starter Pack", Price: 299}},
							{CatalogItem: domain.CatalogItem{ID: 2, Title: "VIP Status", Price: 999}},
						},
						ItemCount:    2,
						AppliedPromo: "PODAROK",
						Totals:       domain.Totals{Subtotal: 1298, DiscountPercent: 30, Total: decimal.RequireFromString("908.6")},
						CanCheckout:  true,
					}, nil
				},
				takeNotificationsFunc: func(ctx context.Context, token string) ([]domain.Notification, error) {
					return []domain.Notification{
						{Level: domain.NotificationSuccess, Title: "Promo code applied! Discount 30%"},
					}, nil
				},
			},
			contains: []string{
				`<span class="badge">2</span>`,
				"1 298 ₽",
				"-30%",
				"908.6 ₽",
				"Promo code applied! Discount 30%",
				"toast toast-success",
				`name="index" value="1"`,
			},
			notContains: []string{
				"Your cart is empty",
				"disabled>Pay",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHomeHandler(t, tt.mock)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.sessionCookie != "" {
				req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: tt.sessionCookie})
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			body := rec.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestHomeHandler_SummaryError(t *testing.T) {
	h := newTestHomeHandler(t, &mockCartService{
		getCartSummaryFunc: func(ctx context.Context, token string) (*domain.CartSummary, error) {
			return nil, domain.Internal(nil, "cart.summary", "boom")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHomeHandler_NotFound(t *testing.T) {
	h := newTestHomeHandler(t, &mockCartService{})

	t.Run("browser gets a page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		rec := httptest.NewRecorder()

		h.NotFound(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Page not found")
		assert.Contains(t, rec.Body.String(), "<html")
	})

	t.Run("api client gets json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
		rec := httptest.NewRecorder()

		h.NotFound(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, domain.ENOTFOUND, decodeError(t, rec).Error.Code)
	})
}

func TestCatalogHandler(t *testing.T) {
	h := NewCatalogHandler(catalog.Default(), catalog.FAQ(), catalog.NewSupportInfo("help@example.com", "", ""))

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Items []domain.CatalogItem `json:"items"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body.Items, 6)
		assert.Equal(t, "Starter Pack", body.Items[0].Title)
		assert.True(t, body.Items[1].Popular)
	})

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"known item", "5", http.StatusOK},
		{"unknown item", "42", http.StatusNotFound},
		{"non numeric id", "abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/catalog/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()

			h.Get(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var item domain.CatalogItem
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
				assert.Equal(t, "Legendary Chest", item.Title)
				assert.Equal(t, int64(1999), item.Price)
			}
		})
	}

	t.Run("faq", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/faq", nil)
		rec := httptest.NewRecorder()

		h.FAQ(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Items []domain.FAQItem `json:"items"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Len(t, body.Items, len(catalog.FAQ()))
	})

	t.Run("support", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/support", nil)
		rec := httptest.NewRecorder()

		h.Support(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var info domain.SupportInfo
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
		assert.Equal(t, "help@example.com", info.Email)
		assert.Equal(t, catalog.DefaultSupportTelegram, info.Telegram)
	})
}
