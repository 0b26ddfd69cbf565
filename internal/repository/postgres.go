package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"beverage-shop/internal/audit"
	"beverage-shop/internal/connections/database"
	"beverage-shop/internal/shop"
)

// querier is satisfied by both the pool and a transaction so the loaders can
// run inside or outside the approval transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewPostgres wires every store against the given pool.
func NewPostgres(db *database.Conn) *Repository {
	return &Repository{
		Users:       NewUsersPG(db),
		Customers:   NewCustomersPG(db),
		Employees:   NewEmployeesPG(db),
		Inventories: NewInventoriesPG(db),
		Orders:      NewOrdersPG(db),
	}
}

// actorID extracts the persistable user id from an audit stamp.
func actorID(a audit.Actor) *int64 {
	if a == nil {
		return nil
	}
	id := a.ActorID()
	return &id
}

// stampRef rebuilds a lightweight actor reference from a stored user id.
// Reads only need the identity; the staff flag is checked against in-memory
// stamps before a save, never against loaded ones.
func stampRef(id *int64) audit.Actor {
	if id == nil {
		return nil
	}
	return &shop.User{ID: *id}
}
