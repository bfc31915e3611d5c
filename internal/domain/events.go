package domain

import "time"

// OrderCreatedEvent is published to the orders exchange after an order
// transaction commits.
type OrderCreatedEvent struct {
	OrderNumber  string    `json:"order_number"`
	RestaurantID int64     `json:"restaurant_id"`
	CustomerName string    `json:"customer_name"`
	TotalAmount  string    `json:"total_amount"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderStatusChangedEvent is published to the notifications exchange when
// staff move an order through its lifecycle.
type OrderStatusChangedEvent struct {
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ChangedAt   time.Time `json:"changed_at"`
}
