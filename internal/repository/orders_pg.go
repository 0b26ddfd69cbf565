package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"beverage-shop/internal/connections/database"
	"beverage-shop/internal/shop"
)

type OrdersPG struct {
	db *database.Conn
}

func NewOrdersPG(db *database.Conn) Orders {
	return &OrdersPG{db: db}
}

func (r *OrdersPG) Get(ctx context.Context, id int64) (*shop.Order, error) {
	return loadOrder(ctx, r.db, id, false)
}

// loadOrder fetches the order with its customer, handler and item list. With
// lock set it takes FOR UPDATE row locks on the order and on every
// referenced inventory row, in stable id order, so concurrent approvals
// serialize instead of double-deducting.
func loadOrder(ctx context.Context, q querier, id int64, lock bool) (*shop.Order, error) {
	var (
		o                    shop.Order
		handlerID            *int64
		createdBy, updatedBy *int64
		comments             *string
	)
	sel := `
		SELECT id, customer_id, state, handler_id, review_date, comments,
		       created_at, created_by, updated_at, updated_by
		FROM orders WHERE id=$1`
	if lock {
		sel += ` FOR UPDATE`
	}

	var customerID int64
	err := q.QueryRow(ctx, sel, id).Scan(
		&o.ID, &customerID, &o.State, &handlerID, &o.ReviewDate, &comments,
		&o.CreatedAt, &createdBy, &o.UpdatedAt, &updatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if comments != nil {
		o.Comments = *comments
	}
	o.CreatedBy = stampRef(createdBy)
	o.UpdatedBy = stampRef(updatedBy)

	o.Customer, err = scanCustomer(q.QueryRow(ctx, `
		SELECT `+customerCols+`
		FROM customers c JOIN users u ON u.id = c.user_id
		WHERE c.id=$1
	`, customerID))
	if err != nil {
		return nil, err
	}

	if handlerID != nil {
		o.Handler, err = scanEmployee(q.QueryRow(ctx, `
			SELECT `+employeeCols+`
			FROM employees e JOIN users u ON u.id = e.user_id
			WHERE e.id=$1
		`, *handlerID))
		if err != nil {
			return nil, err
		}
	}

	if err := loadOrderItems(ctx, q, &o, lock); err != nil {
		return nil, err
	}
	return &o, nil
}

func loadOrderItems(ctx context.Context, q querier, o *shop.Order, lock bool) error {
	itemsSQL := `
		SELECT oi.id, oi.item_id, oi.quantity, oi.unit_price,
		       oi.created_at, oi.created_by, oi.updated_at, oi.updated_by
		FROM order_items oi
		WHERE oi.order_id=$1
		ORDER BY oi.id`
	rows, err := q.Query(ctx, itemsSQL, o.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	itemIDs := make([]int64, 0)
	lines := make([]*shop.OrderItem, 0)
	byItem := make(map[int64]*shop.OrderItem)
	for rows.Next() {
		var (
			line                 shop.OrderItem
			itemID               int64
			createdBy, updatedBy *int64
		)
		if err := rows.Scan(
			&line.ID, &itemID, &line.Quantity, &line.UnitPrice,
			&line.CreatedAt, &createdBy, &line.UpdatedAt, &updatedBy,
		); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		line.Order = o
		line.CreatedBy = stampRef(createdBy)
		line.UpdatedBy = stampRef(updatedBy)
		lines = append(lines, &line)
		itemIDs = append(itemIDs, itemID)
		byItem[itemID] = &line
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(itemIDs) > 0 {
		invSQL := `
			SELECT ` + inventoryCols + `
			FROM inventory WHERE id = ANY($1) ORDER BY id`
		if lock {
			invSQL += ` FOR UPDATE`
		}
		invRows, err := q.Query(ctx, invSQL, itemIDs)
		if err != nil {
			return fmt.Errorf("failed to load inventory for order: %w", err)
		}
		defer invRows.Close()
		for invRows.Next() {
			inv, err := scanInventory(invRows)
			if err != nil {
				return err
			}
			byItem[inv.ID].Item = inv
		}
		if err := invRows.Err(); err != nil {
			return err
		}
	}

	o.Items = lines
	return nil
}

func (r *OrdersPG) Create(ctx context.Context, o *shop.Order) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders
			(customer_id, state, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		o.Customer.ID, string(o.State),
		o.CreatedAt, actorID(o.CreatedBy), o.UpdatedAt, actorID(o.UpdatedBy),
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *OrdersPG) Save(ctx context.Context, o *shop.Order) error {
	return saveOrder(ctx, r.db, o)
}

func saveOrder(ctx context.Context, q querier, o *shop.Order) error {
	var handlerID *int64
	if o.Handler != nil {
		handlerID = &o.Handler.ID
	}
	var comments *string
	if o.Comments != "" {
		comments = &o.Comments
	}
	tag, err := q.Exec(ctx, `
		UPDATE orders
		SET state=$2, handler_id=$3, review_date=$4, comments=$5,
		    updated_at=$6, updated_by=$7
		WHERE id=$1
	`,
		o.ID, string(o.State), handlerID, o.ReviewDate, comments,
		o.UpdatedAt, actorID(o.UpdatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrdersPG) AddItem(ctx context.Context, line *shop.OrderItem) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO order_items
			(order_id, item_id, quantity, unit_price, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		line.Order.ID, line.Item.ID, line.Quantity, line.UnitPrice,
		line.CreatedAt, actorID(line.CreatedBy), line.UpdatedAt, actorID(line.UpdatedBy),
	).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order item: %w", err)
	}
	return nil
}

func (r *OrdersPG) RemoveItem(ctx context.Context, line *shop.OrderItem) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM order_items WHERE id=$1`, line.ID)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrdersPG) SaveItem(ctx context.Context, line *shop.OrderItem) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE order_items
		SET quantity=$2, unit_price=$3, updated_at=$4, updated_by=$5
		WHERE id=$1
	`, line.ID, line.Quantity, line.UnitPrice, line.UpdatedAt, actorID(line.UpdatedBy))
	if err != nil {
		return fmt.Errorf("failed to update order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Approve performs the whole approval inside one transaction. The order row
// and every referenced inventory row are locked FOR UPDATE before the domain
// transition runs, and the state is re-checked under the lock by the
// transition itself, so a concurrent approval of the same order observes the
// terminal state and fails with OperationForbiddenError instead of deducting
// twice. Any error rolls the transaction back; no partial deduction is ever
// visible.
func (r *OrdersPG) Approve(ctx context.Context, orderID int64, employee *shop.Employee, comments string) (*shop.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := loadOrder(ctx, tx, orderID, true)
	if err != nil {
		return nil, err
	}

	if err := o.Approve(employee, comments); err != nil {
		return nil, err
	}

	for _, line := range o.Items {
		if err := saveInventory(ctx, tx, line.Item); err != nil {
			return nil, err
		}
	}
	if err := saveOrder(ctx, tx, o); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit approval transaction: %w", err)
	}
	return o, nil
}
