package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"beverage-shop/internal/connections/database"
	"beverage-shop/internal/shop"
)

type UsersPG struct {
	db *database.Conn
}

func NewUsersPG(db *database.Conn) Users {
	return &UsersPG{db: db}
}

func (r *UsersPG) Get(ctx context.Context, id int64) (*shop.User, error) {
	var u shop.User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, is_staff FROM users WHERE id=$1
	`, id).Scan(&u.ID, &u.Username, &u.Staff)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *UsersPG) Create(ctx context.Context, u *shop.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, is_staff) VALUES ($1, $2) RETURNING id
	`, u.Username, u.Staff).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}
