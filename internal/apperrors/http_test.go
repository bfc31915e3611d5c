package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{"validation", Validation("customer.email", "customer email is invalid"), http.StatusBadRequest, "validation_error"},
		{"not found", NotFound("restaurant", "7"), http.StatusNotFound, "not_found"},
		{"item unavailable", ItemUnavailable("Margherita"), http.StatusConflict, "item_unavailable"},
		{"conflict", Conflict("could not allocate a unique order number, try again"), http.StatusServiceUnavailable, "conflict"},
		{"persistence", Persistence("create_order", errors.New("boom")), http.StatusInternalServerError, "persistence_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["type"] != tt.wantType {
				t.Errorf("type = %v, want %q", body["type"], tt.wantType)
			}
		})
	}
}

func TestWriteErrorValidationField(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, Validation("items[0].quantity", "quantity must be at least 1"))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["field"] != "items[0].quantity" {
		t.Errorf("field = %v, want items[0].quantity", body["field"])
	}
}
