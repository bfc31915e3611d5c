package order

type CreateOrderRequest struct {
	RestaurantID    int64              `json:"restaurant_id"`
	DeliveryAddress string             `json:"delivery_address"`
	DeliveryPhone   string             `json:"delivery_phone"`
	DeliveryNotes   string             `json:"delivery_notes"`
	Customer        CustomerInput      `json:"customer"`
	Items           []OrderItemInput   `json:"items"`
}

type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderItemInput struct {
	MenuItemID          int64   `json:"menu_item_id"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions"`
	VariationIDs        []int64 `json:"variation_ids"`
}
