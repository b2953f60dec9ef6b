package routes

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/gamestore/internal/catalog"
	"github.com/dukerupert/gamestore/internal/cookie"
	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/handler"
	"github.com/dukerupert/gamestore/internal/handler/storefront"
	"github.com/dukerupert/gamestore/internal/middleware"
	"github.com/dukerupert/gamestore/internal/pricing"
	"github.com/dukerupert/gamestore/internal/promo"
	"github.com/dukerupert/gamestore/internal/router"
	"github.com/dukerupert/gamestore/internal/service"
	"github.com/dukerupert/gamestore/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *router.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := service.NewMemorySessionStore(service.DefaultSessionStoreConfig(), promo.DefaultRegistry(), logger)
	t.Cleanup(store.Close)

	cat := catalog.Default()
	cartService := service.NewCartService(store, cat, pricing.RoundNone, nil, logger)

	renderer, err := handler.NewRenderer(web.Templates())
	require.NoError(t, err)

	home := storefront.NewHomeHandler(cat, cartService, renderer, catalog.FAQ(), catalog.NewSupportInfo("", "", ""))
	cart := storefront.NewCartHandler(cartService, cookie.NewConfig("", false, time.Hour))

	r := router.New(middleware.RequestID, middleware.Session, router.Recovery(logger))
	RegisterOpsRoutes(r, OpsDeps{HealthHandler: handler.Health(store.Len)})
	RegisterAPIRoutes(r, APIDeps{
		CatalogHandler: storefront.NewCatalogHandler(cat, catalog.FAQ(), catalog.NewSupportInfo("", "", "")),
		CartHandler:    cart,
	})
	RegisterStorefrontRoutes(r, StorefrontDeps{
		HomeHandler: home,
		CartHandler: cart,
		Static:      web.Static(),
	})
	return r
}

// client replays the session cookie the way a browser would.
type client struct {
	t       *testing.T
	handler http.Handler
	session string
}

func (c *client) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: c.session})
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookie.SessionCookieName {
			c.session = ck.Value
		}
	}
	return rec
}

func (c *client) json(method, path, body string) *httptest.ResponseRecorder {
	return c.do(method, path, "application/json", body)
}

func decodeSummary(t *testing.T, rec *httptest.ResponseRecorder) domain.CartSummary {
	t.Helper()
	var summary domain.CartSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	return summary
}

func TestAPI_CartFlow(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t)}

	rec := c.json(http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, c.session, "reads never create a session")
	assert.Equal(t, 0, decodeSummary(t, rec).ItemCount)

	rec = c.json(http.MethodPost, "/api/cart/items", `{"item_id": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, c.session)

	rec = c.json(http.MethodPost, "/api/cart/items", `{"item_id": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeSummary(t, rec)
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, int64(1298), summary.Totals.Subtotal)
	assert.True(t, summary.CanCheckout)

	rec = c.json(http.MethodPost, "/api/cart/promo", `{"code": "PODAROK"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	summary = decodeSummary(t, rec)
	assert.Equal(t, "PODAROK", summary.AppliedPromo)
	assert.Equal(t, 30, summary.Totals.DiscountPercent)
	assert.Equal(t, "908.6", summary.Totals.Total.String())

	rec = c.json(http.MethodGet, "/api/cart/totals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var totals domain.Totals
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&totals))
	assert.Equal(t, "908.6", totals.Total.String())

	rec = c.json(http.MethodDelete, "/api/cart/items/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary = decodeSummary(t, rec)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "VIP Status", summary.Items[0].Title)

	rec = c.json(http.MethodDelete, "/api/cart/items/9", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.json(http.MethodPost, "/api/cart/promo", `{"code": "NOPE"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.json(http.MethodPost, "/api/checkout", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestAPI_Validation(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t)}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing item id", http.MethodPost, "/api/cart/items", `{}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/cart/items", `{"item_id": 1, "qty": 2}`, http.StatusBadRequest},
		{"unknown item", http.MethodPost, "/api/cart/items", `{"item_id": 99}`, http.StatusNotFound},
		{"empty promo", http.MethodPost, "/api/cart/promo", `{"code": ""}`, http.StatusBadRequest},
		{"bad index", http.MethodDelete, "/api/cart/items/first", "", http.StatusBadRequest},
		{"unknown catalog item", http.MethodGet, "/api/catalog/99", "", http.StatusNotFound},
		{"unknown api path", http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.json(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestStorefront_FormFlow(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t)}
	form := "application/x-www-form-urlencoded"

	rec := c.do(http.MethodPost, "/cart/add", form, url.Values{"item_id": {"3"}}.Encode())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#cart", rec.Header().Get("Location"))
	require.NotEmpty(t, c.session)

	rec = c.do(http.MethodPost, "/cart/promo", form, url.Values{"code": {"WRONG"}}.Encode())
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = c.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<span class="badge">1</span>`)
	assert.Contains(t, body, "1 499 ₽")
	assert.Contains(t, body, "toast toast-error")

	// Toasts are drained by the first render.
	rec = c.do(http.MethodGet, "/", "", "")
	assert.NotContains(t, rec.Body.String(), "toast toast-error")

	rec = c.do(http.MethodPost, "/cart/remove", form, url.Values{"index": {"0"}}.Encode())
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = c.do(http.MethodGet, "/", "", "")
	assert.Contains(t, rec.Body.String(), "Your cart is empty")
}

func TestStorefront_BlankPromoShowsError(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t)}

	rec := c.do(http.MethodPost, "/cart/promo", "application/x-www-form-urlencoded", url.Values{"code": {""}}.Encode())
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = c.do(http.MethodGet, "/", "", "")
	assert.Contains(t, rec.Body.String(), "Invalid promo code")
}

func TestStorefront_APINotificationsShownOnce(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t)}

	rec := c.json(http.MethodPost, "/api/cart/items", `{"item_id": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeSummary(t, rec)
	require.Len(t, summary.Notifications, 1)
	assert.Equal(t, "Added to cart!", summary.Notifications[0].Title)

	rec = c.json(http.MethodPost, "/api/cart/promo", `{"code": "NOPE"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<span class="badge">1</span>`)
	assert.NotContains(t, body, "Added to cart!")
	assert.NotContains(t, body, "toast toast-error")
}

func TestOpsAndFallback(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t)}

	rec := c.do(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = c.do(http.MethodGet, "/static/css/app.css", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/api/catalog", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/no-such-page", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}
