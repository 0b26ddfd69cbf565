package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"beverage-shop/internal/connections/database"
	"beverage-shop/internal/shop"
)

type CustomersPG struct {
	db *database.Conn
}

func NewCustomersPG(db *database.Conn) Customers {
	return &CustomersPG{db: db}
}

const customerCols = `
	c.id, c.name, c.address, c.phone_number,
	c.created_at, c.created_by, c.updated_at, c.updated_by,
	u.id, u.username, u.is_staff
`

func scanCustomer(row pgx.Row) (*shop.Customer, error) {
	var (
		c                    shop.Customer
		u                    shop.User
		createdBy, updatedBy *int64
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.PhoneNumber,
		&c.CreatedAt, &createdBy, &c.UpdatedAt, &updatedBy,
		&u.ID, &u.Username, &u.Staff,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	c.User = &u
	c.CreatedBy = stampRef(createdBy)
	c.UpdatedBy = stampRef(updatedBy)
	return &c, nil
}

func (r *CustomersPG) Get(ctx context.Context, id int64) (*shop.Customer, error) {
	return scanCustomer(r.db.QueryRow(ctx, `
		SELECT `+customerCols+`
		FROM customers c JOIN users u ON u.id = c.user_id
		WHERE c.id=$1
	`, id))
}

func (r *CustomersPG) GetByUser(ctx context.Context, userID int64) (*shop.Customer, error) {
	return scanCustomer(r.db.QueryRow(ctx, `
		SELECT `+customerCols+`
		FROM customers c JOIN users u ON u.id = c.user_id
		WHERE c.user_id=$1
	`, userID))
}

func (r *CustomersPG) Create(ctx context.Context, c *shop.Customer) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO customers
			(name, address, phone_number, user_id, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		c.Name, c.Address, c.PhoneNumber, c.User.ID,
		c.CreatedAt, actorID(c.CreatedBy), c.UpdatedAt, actorID(c.UpdatedBy),
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}
