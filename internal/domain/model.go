package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Slug              string          `json:"slug"`
	Description       string          `json:"description"`
	Address           string          `json:"address"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email"`
	Website           string          `json:"website"`
	CuisineType       string          `json:"cuisine_type"`
	OpeningHours      map[string]any  `json:"opening_hours"`
	DeliveryFee       decimal.Decimal `json:"delivery_fee"`
	MinimumOrder      decimal.Decimal `json:"minimum_order"`
	DeliveryRadius    int             `json:"delivery_radius"`
	IsActive          bool            `json:"is_active"`
	IsAcceptingOrders bool            `json:"is_accepting_orders"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type Category struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	SortOrder    int       `json:"sort_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MenuItem struct {
	ID              int64               `json:"id"`
	RestaurantID    int64               `json:"restaurant_id"`
	CategoryID      int64               `json:"category_id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Price           decimal.Decimal     `json:"price"`
	Ingredients     string              `json:"ingredients"`
	Allergens       string              `json:"allergens"`
	PreparationTime int                 `json:"preparation_time"`
	Calories        *int                `json:"calories,omitempty"`
	IsVegetarian    bool                `json:"is_vegetarian"`
	IsVegan         bool                `json:"is_vegan"`
	IsGlutenFree    bool                `json:"is_gluten_free"`
	IsSpicy         bool                `json:"is_spicy"`
	IsAvailable     bool                `json:"is_available"`
	IsFeatured      bool                `json:"is_featured"`
	SortOrder       int                 `json:"sort_order"`
	Variations      []MenuItemVariation `json:"variations,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type MenuItemVariation struct {
	ID              int64           `json:"id"`
	MenuItemID      int64           `json:"menu_item_id"`
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	IsAvailable     bool            `json:"is_available"`
}

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID                    int64           `json:"id"`
	OrderNumber           string          `json:"order_number"`
	RestaurantID          int64           `json:"restaurant_id"`
	RestaurantName        string          `json:"restaurant_name,omitempty"`
	CustomerID            int64           `json:"customer_id"`
	CustomerName          string          `json:"customer_name,omitempty"`
	Status                OrderStatus     `json:"status"`
	PaymentStatus         PaymentStatus   `json:"payment_status"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	TaxAmount             decimal.Decimal `json:"tax_amount"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	DeliveryAddress       string          `json:"delivery_address"`
	DeliveryPhone         string          `json:"delivery_phone"`
	DeliveryNotes         string          `json:"delivery_notes"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time,omitempty"`
	Items                 []OrderItem     `json:"items"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID                  int64                `json:"id"`
	OrderID             int64                `json:"order_id"`
	MenuItemID          int64                `json:"menu_item_id"`
	ItemName            string               `json:"item_name"`
	Quantity            int                  `json:"quantity"`
	UnitPrice           decimal.Decimal      `json:"unit_price"`
	TotalPrice          decimal.Decimal      `json:"total_price"`
	SpecialInstructions string               `json:"special_instructions"`
	Variations          []OrderItemVariation `json:"variations,omitempty"`
}

// OrderItemVariation records a variation selected for an order item with
// its name and price adjustment frozen at order time. VariationID is nil
// once the catalog variation it came from has been removed.
type OrderItemVariation struct {
	ID              int64           `json:"id"`
	OrderItemID     int64           `json:"order_item_id"`
	VariationID     *int64          `json:"variation_id,omitempty"`
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}
