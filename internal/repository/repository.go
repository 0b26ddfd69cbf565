// Package repository persists the shop's entities in Postgres. The approval
// transaction is the one multi-entity mutation and is all-or-nothing: stock
// deductions and the state transition commit together or not at all.
package repository

import (
	"context"
	"errors"

	"beverage-shop/internal/shop"
)

// ErrNotFound is returned when the requested row does not exist, so HTTP
// handlers can answer 404 without inspecting SQL errors.
var ErrNotFound = errors.New("not found")

type Users interface {
	Get(ctx context.Context, id int64) (*shop.User, error)
	Create(ctx context.Context, u *shop.User) error
}

type Customers interface {
	Get(ctx context.Context, id int64) (*shop.Customer, error)
	GetByUser(ctx context.Context, userID int64) (*shop.Customer, error)
	Create(ctx context.Context, c *shop.Customer) error
}

type Employees interface {
	Get(ctx context.Context, id int64) (*shop.Employee, error)
	GetByUser(ctx context.Context, userID int64) (*shop.Employee, error)
	Create(ctx context.Context, e *shop.Employee) error
}

type Inventories interface {
	Get(ctx context.Context, id int64) (*shop.Inventory, error)
	List(ctx context.Context) ([]*shop.Inventory, error)
	Create(ctx context.Context, inv *shop.Inventory) error
	// Save persists the mutable fields plus the modifier stamp after an
	// update or a deduction.
	Save(ctx context.Context, inv *shop.Inventory) error
}

type Orders interface {
	// Get loads the order together with its customer, handler and item list
	// (each line carrying its inventory item).
	Get(ctx context.Context, id int64) (*shop.Order, error)
	Create(ctx context.Context, o *shop.Order) error
	// Save persists the order's state, handler, review date, comments and
	// modifier stamp.
	Save(ctx context.Context, o *shop.Order) error
	AddItem(ctx context.Context, line *shop.OrderItem) error
	RemoveItem(ctx context.Context, line *shop.OrderItem) error
	SaveItem(ctx context.Context, line *shop.OrderItem) error
	// Approve runs the whole approval inside one transaction: it locks the
	// order row and every referenced inventory row, re-checks the state
	// under the lock, applies the domain transition with its stock
	// deductions and persists everything. Any domain error rolls the
	// transaction back and is returned as-is.
	Approve(ctx context.Context, orderID int64, employee *shop.Employee, comments string) (*shop.Order, error)
}

// Repository bundles every store so services receive one aggregate.
type Repository struct {
	Users       Users
	Customers   Customers
	Employees   Employees
	Inventories Inventories
	Orders      Orders
}
