package restaurant

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/domain"
)

// Querier is satisfied by *sql.DB and *sql.Tx, so the same queries serve
// both the admin endpoints and the order engine's transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository struct {
	q Querier
}

func NewRepository(q Querier) *Repository { return &Repository{q: q} }

const restaurantColumns = `id, name, slug, description, address, phone, email, website,
	cuisine_type, opening_hours, delivery_fee, minimum_order, delivery_radius,
	is_active, is_accepting_orders, created_at, updated_at`

func scanRestaurant(row interface{ Scan(...any) error }) (*domain.Restaurant, error) {
	var r domain.Restaurant
	var hours []byte
	err := row.Scan(&r.ID, &r.Name, &r.Slug, &r.Description, &r.Address, &r.Phone,
		&r.Email, &r.Website, &r.CuisineType, &hours, &r.DeliveryFee, &r.MinimumOrder,
		&r.DeliveryRadius, &r.IsActive, &r.IsAcceptingOrders, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &r.OpeningHours); err != nil {
			return nil, fmt.Errorf("failed to decode opening hours: %w", err)
		}
	}
	return &r, nil
}

func (r *Repository) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	rest, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("restaurant", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return rest, nil
}

func (r *Repository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	out := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		out = append(out, *rest)
	}
	return out, rows.Err()
}

func (r *Repository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	hours, err := json.Marshal(orEmptyMap(rest.OpeningHours))
	if err != nil {
		return fmt.Errorf("failed to encode opening hours: %w", err)
	}
	err = r.q.QueryRowContext(ctx, `
		INSERT INTO restaurants
			(name, slug, description, address, phone, email, website, cuisine_type,
			 opening_hours, delivery_fee, minimum_order, delivery_radius,
			 is_active, is_accepting_orders)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id, created_at, updated_at`,
		rest.Name, rest.Slug, rest.Description, rest.Address, rest.Phone, rest.Email,
		rest.Website, rest.CuisineType, hours, rest.DeliveryFee, rest.MinimumOrder,
		rest.DeliveryRadius, rest.IsActive, rest.IsAcceptingOrders,
	).Scan(&rest.ID, &rest.CreatedAt, &rest.UpdatedAt)
	if isUniqueViolation(err, "restaurants_slug_key") {
		return apperrors.Validation("name", "a restaurant with this name already exists")
	}
	if err != nil {
		return fmt.Errorf("failed to insert restaurant: %w", err)
	}
	return nil
}

func (r *Repository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	hours, err := json.Marshal(orEmptyMap(rest.OpeningHours))
	if err != nil {
		return fmt.Errorf("failed to encode opening hours: %w", err)
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE restaurants SET
			name = $1, description = $2, address = $3, phone = $4, email = $5,
			website = $6, cuisine_type = $7, opening_hours = $8, delivery_fee = $9,
			minimum_order = $10, delivery_radius = $11, is_accepting_orders = $12,
			updated_at = NOW()
		WHERE id = $13`,
		rest.Name, rest.Description, rest.Address, rest.Phone, rest.Email,
		rest.Website, rest.CuisineType, hours, rest.DeliveryFee, rest.MinimumOrder,
		rest.DeliveryRadius, rest.IsAcceptingOrders, rest.ID)
	if err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	return requireRowAffected(res, "restaurant", rest.ID)
}

func (r *Repository) DeactivateRestaurant(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE restaurants SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate restaurant: %w", err)
	}
	return requireRowAffected(res, "restaurant", id)
}

type Stats struct {
	TotalRestaurants int      `json:"total_restaurants"`
	OpenRestaurants  int      `json:"open_restaurants"`
	CuisineTypes     []string `json:"cuisine_types"`
}

func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE is_active),
		       COUNT(*) FILTER (WHERE is_active AND is_accepting_orders)
		FROM restaurants`).Scan(&s.TotalRestaurants, &s.OpenRestaurants)
	if err != nil {
		return nil, fmt.Errorf("failed to count restaurants: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT DISTINCT cuisine_type FROM restaurants
		WHERE is_active AND cuisine_type <> '' ORDER BY cuisine_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cuisine types: %w", err)
	}
	defer rows.Close()

	s.CuisineTypes = []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		s.CuisineTypes = append(s.CuisineTypes, c)
	}
	return &s, rows.Err()
}

func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func requireRowAffected(res sql.Result, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound(resource, strconv.FormatInt(id, 10))
	}
	return nil
}
