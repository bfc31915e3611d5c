package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

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

// FindOrCreate resolves a customer by email, inserting a new row when none
// exists. An existing customer's stored details are left untouched; the
// email is the identity, everything else was captured at first contact.
func (r *Repository) FindOrCreate(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(c.Email))

	var created domain.Customer
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO customers (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, name, email, phone, address, created_at`,
		c.Name, email, c.Phone, c.Address,
	).Scan(&created.ID, &created.Name, &created.Email, &created.Phone,
		&created.Address, &created.CreatedAt)
	if err == nil {
		return &created, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}

	// The row already existed, so DO NOTHING returned nothing.
	var existing domain.Customer
	err = r.q.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address, created_at
		FROM customers WHERE email = $1`, email,
	).Scan(&existing.ID, &existing.Name, &existing.Email, &existing.Phone,
		&existing.Address, &existing.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing customer: %w", err)
	}
	return &existing, nil
}

func (r *Repository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address, created_at
		FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("customer", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

func (r *Repository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, email, phone, address, created_at
		FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	out := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
