package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

const orderColumns = `o.id, o.order_number, o.restaurant_id, r.name, o.customer_id, c.name,
	o.status, o.payment_status, o.subtotal, o.delivery_fee, o.tax_amount, o.total_amount,
	o.delivery_address, o.delivery_phone, o.delivery_notes, o.estimated_delivery_time,
	o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.RestaurantID, &o.RestaurantName,
		&o.CustomerID, &o.CustomerName, &o.Status, &o.PaymentStatus,
		&o.Subtotal, &o.DeliveryFee, &o.TaxAmount, &o.TotalAmount,
		&o.DeliveryAddress, &o.DeliveryPhone, &o.DeliveryNotes,
		&o.EstimatedDeliveryTime, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		JOIN customers c ON c.id = o.customer_id
		WHERE o.order_number = $1`, number)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("order", number)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if o.Items, err = r.loadItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, mi.name, oi.quantity,
		       oi.unit_price, oi.total_price, oi.special_instructions
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.ItemName,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.SpecialInstructions); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].Variations, err = r.loadItemVariations(ctx, items[i].ID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *Repository) loadItemVariations(ctx context.Context, orderItemID int64) ([]domain.OrderItemVariation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_item_id, variation_id, name, price_adjustment
		FROM order_item_variations
		WHERE order_item_id = $1
		ORDER BY id`, orderItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item variations: %w", err)
	}
	defer rows.Close()

	out := []domain.OrderItemVariation{}
	for rows.Next() {
		var v domain.OrderItemVariation
		if err := rows.Scan(&v.ID, &v.OrderItemID, &v.VariationID, &v.Name, &v.PriceAdjustment); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListByRestaurant returns the restaurant's orders newest first, without
// item detail. Item rows are only loaded for single-order lookups.
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID int64, limit int) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		JOIN customers c ON c.id = o.customer_id
		WHERE o.restaurant_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2`, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	out := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Items = []domain.OrderItem{}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *Repository) CountByRestaurant(ctx context.Context, restaurantID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE restaurant_id = $1`, restaurantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

// UpdateStatus moves the order to the given status and returns the previous
// one so the caller can announce the transition.
func (r *Repository) UpdateStatus(ctx context.Context, number string, status domain.OrderStatus) (domain.OrderStatus, error) {
	var old domain.OrderStatus
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders o SET status = $1, updated_at = NOW()
		FROM orders prev
		WHERE o.id = prev.id AND o.order_number = $2
		RETURNING prev.status`, status, number).Scan(&old)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.NotFound("order", number)
	}
	if err != nil {
		return "", fmt.Errorf("failed to update order status: %w", err)
	}
	return old, nil
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, number string, status domain.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET payment_status = $1, updated_at = NOW()
		WHERE order_number = $2`, status, number)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("order", number)
	}
	return nil
}
