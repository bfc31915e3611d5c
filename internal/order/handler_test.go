package order

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foxi-food/internal/common/logger"
)

func newTestHandler(tx *fakeTx) http.Handler {
	svc, _ := newTestService(tx, "0")
	mux := http.NewServeMux()
	NewHandler(svc, logger.New("test")).Register(mux)
	return mux
}

func TestCreateOrderEndpoint(t *testing.T) {
	h := newTestHandler(newFakeTx())

	body := `{
		"restaurant_id": 1,
		"delivery_address": "Hlavná 1, Bratislava",
		"delivery_phone": "+421 900 000 000",
		"customer": {"name": "Jana Nováková", "email": "jana@example.com"},
		"items": [
			{"menu_item_id": 10, "quantity": 1},
			{"menu_item_id": 11, "quantity": 2}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_amount":"25.96"`)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestCreateOrderEndpointRejectsUnknownFields(t *testing.T) {
	h := newTestHandler(newFakeTx())

	req := httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"restaurant_id": 1, "tip_amount": "5.00"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	h := newTestHandler(newFakeTx())

	req := httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"restaurant_id": 1}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"validation_error"`)
}

func TestCreateOrderEndpointUnavailableItem(t *testing.T) {
	h := newTestHandler(newFakeTx())

	body := `{
		"restaurant_id": 1,
		"delivery_address": "Hlavná 1, Bratislava",
		"delivery_phone": "+421 900 000 000",
		"customer": {"name": "Jana Nováková", "email": "jana@example.com"},
		"items": [{"menu_item_id": 12, "quantity": 1}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"item_unavailable"`)
}
