package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"beverage-shop/internal/connections/database"
	"beverage-shop/internal/shop"
)

type EmployeesPG struct {
	db *database.Conn
}

func NewEmployeesPG(db *database.Conn) Employees {
	return &EmployeesPG{db: db}
}

const employeeCols = `
	e.id, e.name, e.gender,
	e.created_at, e.created_by, e.updated_at, e.updated_by,
	u.id, u.username, u.is_staff
`

func scanEmployee(row pgx.Row) (*shop.Employee, error) {
	var (
		e                    shop.Employee
		u                    shop.User
		createdBy, updatedBy *int64
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.Gender,
		&e.CreatedAt, &createdBy, &e.UpdatedAt, &updatedBy,
		&u.ID, &u.Username, &u.Staff,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}
	e.User = &u
	e.CreatedBy = stampRef(createdBy)
	e.UpdatedBy = stampRef(updatedBy)
	return &e, nil
}

func (r *EmployeesPG) Get(ctx context.Context, id int64) (*shop.Employee, error) {
	return scanEmployee(r.db.QueryRow(ctx, `
		SELECT `+employeeCols+`
		FROM employees e JOIN users u ON u.id = e.user_id
		WHERE e.id=$1
	`, id))
}

func (r *EmployeesPG) GetByUser(ctx context.Context, userID int64) (*shop.Employee, error) {
	return scanEmployee(r.db.QueryRow(ctx, `
		SELECT `+employeeCols+`
		FROM employees e JOIN users u ON u.id = e.user_id
		WHERE e.user_id=$1
	`, userID))
}

func (r *EmployeesPG) Create(ctx context.Context, e *shop.Employee) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO employees
			(name, gender, user_id, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		e.Name, string(e.Gender), e.User.ID,
		e.CreatedAt, actorID(e.CreatedBy), e.UpdatedAt, actorID(e.UpdatedBy),
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}
