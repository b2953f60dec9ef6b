package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAddRequest struct {
	ItemID int    `json:"item_id" validate:"required,gt=0"`
	Code   string `json:"code,omitempty" validate:"max=8"`
}

func newJSONRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   string
		wantFields map[string]string
	}{
		{
			name: "valid body",
			body: `{"item_id": 3}`,
		},
		{
			name:     "empty body",
			body:     ``,
			wantCode: domain.EINVALID,
		},
		{
			name:     "malformed json",
			body:     `{"item_id":`,
			wantCode: domain.EINVALID,
		},
		{
			name:     "unknown field",
			body:     `{"item_id": 1, "quantity": 2}`,
			wantCode: domain.EINVALID,
		},
		{
			name:       "missing item id",
			body:       `{}`,
			wantFields: map[string]string{"item_id": "item_id is required"},
		},
		{
			name: "negative item id and long code",
			body: `{"item_id": -1, "code": "TOOLONGCODE"}`,
			wantFields: map[string]string{
				"item_id": "item_id must be greater than 0",
				"code":    "code must be at most 8 characters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst testAddRequest
			err := DecodeJSON(newJSONRequest(tt.body), "cart.add", &dst)

			switch {
			case tt.wantFields != nil:
				require.True(t, domain.IsValidationError(err), "got %v", err)
				assert.Equal(t, tt.wantFields, domain.GetValidationFields(err))
			case tt.wantCode != "":
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, domain.ErrorCode(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, 3, dst.ItemID)
			}
		})
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	req := newJSONRequest(`{"item_id": 1, "code": "` + strings.Repeat("x", 100) + `"}`)
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 16)

	var dst testAddRequest
	err := DecodeJSON(req, "cart.add", &dst)

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, "Request body too large", domain.ErrorMessage(err))
}
