package order

import (
	"errors"
	"strings"
	"testing"

	"foxi-food/internal/apperrors"
)

func validRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		RestaurantID:    1,
		DeliveryAddress: "Hlavná 1, Bratislava",
		DeliveryPhone:   "+421 900 000 000",
		Customer: CustomerInput{
			Name:  "Jana Nováková",
			Email: "jana@example.com",
		},
		Items: []OrderItemInput{
			{MenuItemID: 10, Quantity: 1},
		},
	}
}

func TestValidateCreateOrderRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CreateOrderRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(r *CreateOrderRequest) {},
		},
		{
			name:    "missing restaurant id",
			mutate:  func(r *CreateOrderRequest) { r.RestaurantID = 0 },
			wantErr: "restaurant_id",
		},
		{
			name:    "missing delivery address",
			mutate:  func(r *CreateOrderRequest) { r.DeliveryAddress = "" },
			wantErr: "delivery_address",
		},
		{
			name:    "missing delivery phone",
			mutate:  func(r *CreateOrderRequest) { r.DeliveryPhone = "" },
			wantErr: "delivery_phone",
		},
		{
			name:    "missing customer name",
			mutate:  func(r *CreateOrderRequest) { r.Customer.Name = "" },
			wantErr: "customer.name",
		},
		{
			name:    "customer name too long",
			mutate:  func(r *CreateOrderRequest) { r.Customer.Name = strings.Repeat("a", 101) },
			wantErr: "customer.name",
		},
		{
			name:    "missing customer email",
			mutate:  func(r *CreateOrderRequest) { r.Customer.Email = "" },
			wantErr: "customer.email",
		},
		{
			name:    "malformed customer email",
			mutate:  func(r *CreateOrderRequest) { r.Customer.Email = "not-an-email" },
			wantErr: "customer.email",
		},
		{
			name:    "empty items",
			mutate:  func(r *CreateOrderRequest) { r.Items = nil },
			wantErr: "items",
		},
		{
			name:    "missing menu item id",
			mutate:  func(r *CreateOrderRequest) { r.Items[0].MenuItemID = 0 },
			wantErr: "items[0].menu_item_id",
		},
		{
			name:    "zero quantity",
			mutate:  func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 },
			wantErr: "items[0].quantity",
		},
		{
			name: "bad quantity in second item",
			mutate: func(r *CreateOrderRequest) {
				r.Items = append(r.Items, OrderItemInput{MenuItemID: 11, Quantity: -1})
			},
			wantErr: "items[1].quantity",
		},
		{
			name: "distinct variation ids",
			mutate: func(r *CreateOrderRequest) {
				r.Items[0].VariationIDs = []int64{100, 101}
			},
		},
		{
			name: "duplicate variation ids",
			mutate: func(r *CreateOrderRequest) {
				r.Items[0].VariationIDs = []int64{100, 100}
			},
			wantErr: "items[0].variation_ids",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := validateCreateOrderRequest(req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var ve *apperrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tt.wantErr {
				t.Errorf("field = %q, want %q", ve.Field, tt.wantErr)
			}
		})
	}
}
