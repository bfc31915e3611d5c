package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"foxi-food/internal/catalog"
	"foxi-food/internal/customer"
	"foxi-food/internal/domain"
	"foxi-food/internal/restaurant"
)

// ErrOrderNumberTaken signals that the generated order number collided with
// an existing one. The whole transaction is aborted at that point, so the
// caller must retry with a fresh number, not just re-run the insert.
var ErrOrderNumberTaken = errors.New("order number already taken")

// Tx is the set of storage capabilities available to one order-creation
// unit of work. Everything runs on the same database transaction.
type Tx interface {
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	GetVariations(ctx context.Context, menuItemID int64, ids []int64) ([]domain.MenuItemVariation, error)
	FindOrCreate(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	InsertOrder(ctx context.Context, o *domain.Order) error
	InsertOrderItems(ctx context.Context, orderID int64, items []domain.OrderItem) error
}

type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

// pgTx satisfies Tx by composing the per-domain repositories over one
// *sql.Tx. The lookups and the customer upsert are delegated; the order
// writes live here.
type pgTx struct {
	restaurants *restaurant.Repository
	menu        *catalog.Repository
	customers   *customer.Repository
	tx          *sql.Tx
}

func (t *pgTx) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	return t.restaurants.GetRestaurant(ctx, id)
}

func (t *pgTx) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return t.menu.GetMenuItem(ctx, id)
}

func (t *pgTx) GetVariations(ctx context.Context, menuItemID int64, ids []int64) ([]domain.MenuItemVariation, error) {
	return t.menu.GetVariations(ctx, menuItemID, ids)
}

func (t *pgTx) FindOrCreate(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	return t.customers.FindOrCreate(ctx, c)
}

func (r *Repository) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	err = fn(&pgTx{
		restaurants: restaurant.NewRepository(tx),
		menu:        catalog.NewRepository(tx),
		customers:   customer.NewRepository(tx),
		tx:          tx,
	})
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *pgTx) InsertOrder(ctx context.Context, o *domain.Order) error {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO orders
			(order_number, restaurant_id, customer_id, status, payment_status,
			 subtotal, delivery_fee, tax_amount, total_amount,
			 delivery_address, delivery_phone, delivery_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at`,
		o.OrderNumber, o.RestaurantID, o.CustomerID, o.Status, o.PaymentStatus,
		o.Subtotal, o.DeliveryFee, o.TaxAmount, o.TotalAmount,
		o.DeliveryAddress, o.DeliveryPhone, o.DeliveryNotes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "orders_order_number_key" {
			return ErrOrderNumberTaken
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (t *pgTx) InsertOrderItems(ctx context.Context, orderID int64, items []domain.OrderItem) error {
	for i := range items {
		item := &items[i]
		err := t.tx.QueryRowContext(ctx, `
			INSERT INTO order_items
				(order_id, menu_item_id, quantity, unit_price, total_price, special_instructions)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id`,
			orderID, item.MenuItemID, item.Quantity, item.UnitPrice,
			item.TotalPrice, item.SpecialInstructions,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
		item.OrderID = orderID

		for j := range item.Variations {
			v := &item.Variations[j]
			err := t.tx.QueryRowContext(ctx, `
				INSERT INTO order_item_variations
					(order_item_id, variation_id, name, price_adjustment)
				VALUES ($1,$2,$3,$4)
				RETURNING id`,
				item.ID, v.VariationID, v.Name, v.PriceAdjustment,
			).Scan(&v.ID)
			if err != nil {
				return fmt.Errorf("failed to insert order item variation: %w", err)
			}
			v.OrderItemID = item.ID
		}
	}
	return nil
}
