package order

import (
	"fmt"
	"net/mail"

	"foxi-food/internal/apperrors"
)

func validateCreateOrderRequest(req *CreateOrderRequest) error {
	if req.RestaurantID <= 0 {
		return apperrors.Validation("restaurant_id", "restaurant id is required")
	}
	if req.DeliveryAddress == "" {
		return apperrors.Validation("delivery_address", "delivery address is required")
	}
	if req.DeliveryPhone == "" {
		return apperrors.Validation("delivery_phone", "delivery phone is required")
	}
	if err := validateCustomer(&req.Customer); err != nil {
		return err
	}
	return validateItems(req.Items)
}

func validateCustomer(c *CustomerInput) error {
	if c.Name == "" {
		return apperrors.Validation("customer.name", "customer name is required")
	}
	if len(c.Name) > 100 {
		return apperrors.Validation("customer.name", "customer name must be less than 100 characters")
	}
	if c.Email == "" {
		return apperrors.Validation("customer.email", "customer email is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return apperrors.Validation("customer.email", "customer email is invalid")
	}
	return nil
}

func validateItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return apperrors.Validation("items", "at least one item is required")
	}
	for i, item := range items {
		if item.MenuItemID <= 0 {
			return apperrors.Validation(
				fmt.Sprintf("items[%d].menu_item_id", i), "menu item id is required")
		}
		if item.Quantity < 1 {
			return apperrors.Validation(
				fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
		}
		seen := make(map[int64]bool, len(item.VariationIDs))
		for _, id := range item.VariationIDs {
			if seen[id] {
				return apperrors.Validation(
					fmt.Sprintf("items[%d].variation_ids", i), "variation ids must be unique")
			}
			seen[id] = true
		}
	}
	return nil
}
