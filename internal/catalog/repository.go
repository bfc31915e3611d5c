package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/domain"
)

type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository struct {
	q Querier
}

func NewRepository(q Querier) *Repository { return &Repository{q: q} }

const menuItemColumns = `id, restaurant_id, category_id, name, description, price,
	ingredients, allergens, preparation_time, calories, is_vegetarian, is_vegan,
	is_gluten_free, is_spicy, is_available, is_featured, sort_order, created_at, updated_at`

func scanMenuItem(row interface{ Scan(...any) error }) (*domain.MenuItem, error) {
	var m domain.MenuItem
	err := row.Scan(&m.ID, &m.RestaurantID, &m.CategoryID, &m.Name, &m.Description,
		&m.Price, &m.Ingredients, &m.Allergens, &m.PreparationTime, &m.Calories,
		&m.IsVegetarian, &m.IsVegan, &m.IsGlutenFree, &m.IsSpicy, &m.IsAvailable,
		&m.IsFeatured, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMenuItem returns the item row without loading variations. It does not
// filter on availability; callers decide how an unavailable item is handled.
func (r *Repository) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("menu item", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

// GetVariations returns the requested variations of a menu item, preserving
// the order of ids. A missing id or one belonging to a different item yields
// a not found error.
func (r *Repository) GetVariations(ctx context.Context, menuItemID int64, ids []int64) ([]domain.MenuItemVariation, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	byID := make(map[int64]domain.MenuItemVariation, len(ids))
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, menu_item_id, name, price_adjustment, is_available
		FROM menu_item_variations
		WHERE menu_item_id = $1 AND id = ANY($2)`, menuItemID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get variations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v domain.MenuItemVariation
		if err := rows.Scan(&v.ID, &v.MenuItemID, &v.Name, &v.PriceAdjustment, &v.IsAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan variation: %w", err)
		}
		byID[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.MenuItemVariation, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			return nil, apperrors.NotFound("variation", strconv.FormatInt(id, 10))
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Repository) ListVariations(ctx context.Context, menuItemID int64) ([]domain.MenuItemVariation, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, menu_item_id, name, price_adjustment, is_available
		FROM menu_item_variations WHERE menu_item_id = $1 ORDER BY id`, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variations: %w", err)
	}
	defer rows.Close()

	out := []domain.MenuItemVariation{}
	for rows.Next() {
		var v domain.MenuItemVariation
		if err := rows.Scan(&v.ID, &v.MenuItemID, &v.Name, &v.PriceAdjustment, &v.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repository) ReplaceVariations(ctx context.Context, menuItemID int64, variations []domain.MenuItemVariation) error {
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM menu_item_variations WHERE menu_item_id = $1`, menuItemID); err != nil {
		return fmt.Errorf("failed to clear variations: %w", err)
	}
	for i := range variations {
		v := &variations[i]
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO menu_item_variations (menu_item_id, name, price_adjustment, is_available)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			menuItemID, v.Name, v.PriceAdjustment, v.IsAvailable).Scan(&v.ID)
		if err != nil {
			return fmt.Errorf("failed to insert variation: %w", err)
		}
		v.MenuItemID = menuItemID
	}
	return nil
}

func (r *Repository) ListMenuItems(ctx context.Context, restaurantID int64) ([]domain.MenuItem, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+menuItemColumns+` FROM menu_items
		WHERE restaurant_id = $1 AND is_available
		ORDER BY sort_order, name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	out := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *Repository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO menu_items
			(restaurant_id, category_id, name, description, price, ingredients,
			 allergens, preparation_time, calories, is_vegetarian, is_vegan,
			 is_gluten_free, is_spicy, is_available, is_featured, sort_order)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, created_at, updated_at`,
		item.RestaurantID, item.CategoryID, item.Name, item.Description, item.Price,
		item.Ingredients, item.Allergens, item.PreparationTime, item.Calories,
		item.IsVegetarian, item.IsVegan, item.IsGlutenFree, item.IsSpicy,
		item.IsAvailable, item.IsFeatured, item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *Repository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE menu_items SET
			category_id = $1, name = $2, description = $3, price = $4,
			ingredients = $5, allergens = $6, preparation_time = $7, calories = $8,
			is_vegetarian = $9, is_vegan = $10, is_gluten_free = $11, is_spicy = $12,
			is_available = $13, is_featured = $14, sort_order = $15, updated_at = NOW()
		WHERE id = $16`,
		item.CategoryID, item.Name, item.Description, item.Price, item.Ingredients,
		item.Allergens, item.PreparationTime, item.Calories, item.IsVegetarian,
		item.IsVegan, item.IsGlutenFree, item.IsSpicy, item.IsAvailable,
		item.IsFeatured, item.SortOrder, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	return requireRowAffected(res, "menu item", item.ID)
}

func (r *Repository) DisableMenuItem(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE menu_items SET is_available = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to disable menu item: %w", err)
	}
	return requireRowAffected(res, "menu item", id)
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.q.QueryRowContext(ctx, `
		SELECT id, restaurant_id, name, description, sort_order, is_active, created_at, updated_at
		FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description, &c.SortOrder,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("category", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

func (r *Repository) ListCategories(ctx context.Context, restaurantID int64) ([]domain.Category, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, restaurant_id, name, description, sort_order, is_active, created_at, updated_at
		FROM categories WHERE restaurant_id = $1 AND is_active
		ORDER BY sort_order, name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description,
			&c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) CreateCategory(ctx context.Context, c *domain.Category) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO categories (restaurant_id, name, description, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		c.RestaurantID, c.Name, c.Description, c.SortOrder, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *Repository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE categories SET name = $1, description = $2, sort_order = $3, updated_at = NOW()
		WHERE id = $4`,
		c.Name, c.Description, c.SortOrder, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireRowAffected(res, "category", c.ID)
}

func (r *Repository) DisableCategory(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE categories SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to disable category: %w", err)
	}
	return requireRowAffected(res, "category", id)
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
