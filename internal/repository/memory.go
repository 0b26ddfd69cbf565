package repository

import (
	"context"
	"sync"

	"beverage-shop/internal/shop"
)

// Memory is an in-process implementation of every store. It backs the
// service tests and local development without Postgres. The same mutex that
// guards the maps also serializes Approve, standing in for the row locks of
// the Postgres implementation.
type Memory struct {
	mu sync.Mutex

	users       map[int64]*shop.User
	customers   map[int64]*shop.Customer
	employees   map[int64]*shop.Employee
	inventories map[int64]*shop.Inventory
	orders      map[int64]*shop.Order

	nextID int64
}

func NewMemory() *Memory {
	return &Memory{
		users:       make(map[int64]*shop.User),
		customers:   make(map[int64]*shop.Customer),
		employees:   make(map[int64]*shop.Employee),
		inventories: make(map[int64]*shop.Inventory),
		orders:      make(map[int64]*shop.Order),
	}
}

// Stores returns the aggregate backed by this memory store.
func (m *Memory) Stores() *Repository {
	return &Repository{
		Users:       (*memUsers)(m),
		Customers:   (*memCustomers)(m),
		Employees:   (*memEmployees)(m),
		Inventories: (*memInventories)(m),
		Orders:      (*memOrders)(m),
	}
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

type memUsers Memory

func (m *memUsers) Get(_ context.Context, id int64) (*shop.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *memUsers) Create(_ context.Context, u *shop.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == 0 {
		u.ID = (*Memory)(m).id()
	}
	m.users[u.ID] = u
	return nil
}

type memCustomers Memory

func (m *memCustomers) Get(_ context.Context, id int64) (*shop.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *memCustomers) GetByUser(_ context.Context, userID int64) (*shop.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.User != nil && c.User.ID == userID {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memCustomers) Create(_ context.Context, c *shop.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = (*Memory)(m).id()
	}
	m.customers[c.ID] = c
	return nil
}

type memEmployees Memory

func (m *memEmployees) Get(_ context.Context, id int64) (*shop.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (m *memEmployees) GetByUser(_ context.Context, userID int64) (*shop.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.employees {
		if e.User != nil && e.User.ID == userID {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memEmployees) Create(_ context.Context, e *shop.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == 0 {
		e.ID = (*Memory)(m).id()
	}
	m.employees[e.ID] = e
	return nil
}

type memInventories Memory

func (m *memInventories) Get(_ context.Context, id int64) (*shop.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.inventories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return inv, nil
}

func (m *memInventories) List(_ context.Context) ([]*shop.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]*shop.Inventory, 0, len(m.inventories))
	for _, inv := range m.inventories {
		items = append(items, inv)
	}
	return items, nil
}

func (m *memInventories) Create(_ context.Context, inv *shop.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inv.ID == 0 {
		inv.ID = (*Memory)(m).id()
	}
	m.inventories[inv.ID] = inv
	return nil
}

func (m *memInventories) Save(_ context.Context, inv *shop.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.inventories[inv.ID]; !ok {
		return ErrNotFound
	}
	m.inventories[inv.ID] = inv
	return nil
}

type memOrders Memory

func (m *memOrders) Get(_ context.Context, id int64) (*shop.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(id)
}

func (m *memOrders) get(id int64) (*shop.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (m *memOrders) Create(_ context.Context, o *shop.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == 0 {
		o.ID = (*Memory)(m).id()
	}
	m.orders[o.ID] = o
	return nil
}

func (m *memOrders) Save(_ context.Context, o *shop.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID]; !ok {
		return ErrNotFound
	}
	m.orders[o.ID] = o
	return nil
}

func (m *memOrders) AddItem(_ context.Context, line *shop.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if line.ID == 0 {
		line.ID = (*Memory)(m).id()
	}
	return nil
}

func (m *memOrders) RemoveItem(_ context.Context, _ *shop.OrderItem) error { return nil }

func (m *memOrders) SaveItem(_ context.Context, _ *shop.OrderItem) error { return nil }

func (m *memOrders) Approve(_ context.Context, orderID int64, employee *shop.Employee, comments string) (*shop.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, err := m.get(orderID)
	if err != nil {
		return nil, err
	}
	// The domain transition checks every deduction before any stock moves,
	// so a failure here leaves both the order and the stock untouched.
	if err := o.Approve(employee, comments); err != nil {
		return nil, err
	}
	return o, nil
}
