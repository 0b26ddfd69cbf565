package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"beverage-shop/internal/connections/database"
	"beverage-shop/internal/shop"
)

type InventoriesPG struct {
	db *database.Conn
}

func NewInventoriesPG(db *database.Conn) Inventories {
	return &InventoriesPG{db: db}
}

const inventoryCols = `
	id, beverage_name, beverage_type, caffeinated, flavored,
	on_hand, price, warn_limit,
	created_at, created_by, updated_at, updated_by
`

func scanInventory(row pgx.Row) (*shop.Inventory, error) {
	var (
		inv                  shop.Inventory
		createdBy, updatedBy *int64
	)
	err := row.Scan(
		&inv.ID, &inv.BeverageName, &inv.BeverageType, &inv.Caffeinated, &inv.Flavored,
		&inv.OnHand, &inv.Price, &inv.WarnLimit,
		&inv.CreatedAt, &createdBy, &inv.UpdatedAt, &updatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan inventory item: %w", err)
	}
	inv.CreatedBy = stampRef(createdBy)
	inv.UpdatedBy = stampRef(updatedBy)
	return &inv, nil
}

func (r *InventoriesPG) Get(ctx context.Context, id int64) (*shop.Inventory, error) {
	return scanInventory(r.db.QueryRow(ctx, `
		SELECT `+inventoryCols+` FROM inventory WHERE id=$1
	`, id))
}

func (r *InventoriesPG) List(ctx context.Context) ([]*shop.Inventory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+inventoryCols+` FROM inventory ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var items []*shop.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}

func (r *InventoriesPG) Create(ctx context.Context, inv *shop.Inventory) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO inventory
			(beverage_name, beverage_type, caffeinated, flavored, on_hand, price, warn_limit,
			 created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`,
		inv.BeverageName, string(inv.BeverageType), inv.Caffeinated, inv.Flavored,
		inv.OnHand, inv.Price, inv.WarnLimit,
		inv.CreatedAt, actorID(inv.CreatedBy), inv.UpdatedAt, actorID(inv.UpdatedBy),
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}

func (r *InventoriesPG) Save(ctx context.Context, inv *shop.Inventory) error {
	return saveInventory(ctx, r.db, inv)
}

func saveInventory(ctx context.Context, q querier, inv *shop.Inventory) error {
	tag, err := q.Exec(ctx, `
		UPDATE inventory
		SET beverage_name=$2, beverage_type=$3, caffeinated=$4, flavored=$5,
		    on_hand=$6, price=$7, warn_limit=$8, updated_at=$9, updated_by=$10
		WHERE id=$1
	`,
		inv.ID,
		inv.BeverageName, string(inv.BeverageType), inv.Caffeinated, inv.Flavored,
		inv.OnHand, inv.Price, inv.WarnLimit,
		inv.UpdatedAt, actorID(inv.UpdatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
