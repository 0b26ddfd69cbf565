package service

import (
	"context"

	"github.com/shopspring/decimal"

	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/repository"
	"beverage-shop/internal/shop"
	"beverage-shop/internal/validate"
)

// NewItem carries the caller-supplied properties of a new inventory item.
type NewItem struct {
	BeverageName string
	BeverageType shop.BeverageType
	Caffeinated  bool
	Flavored     bool
	OnHand       int
	Price        decimal.Decimal
	WarnLimit    *int
}

type InventoryServiceInterface interface {
	Create(ctx context.Context, actor *shop.User, item NewItem) (*shop.Inventory, error)
	Get(ctx context.Context, id int64) (*shop.Inventory, error)
	List(ctx context.Context) ([]*shop.Inventory, error)
	Update(ctx context.Context, actor *shop.User, id int64, ch shop.InventoryChanges) (*shop.Inventory, error)
	Deduct(ctx context.Context, actor *shop.User, id int64, quantity int) (int, error)
}

type InventoryService struct {
	repo *repository.Repository
	vcfg validate.Config
	log  *logger.Logger
}

func NewInventoryService(repo *repository.Repository, vcfg validate.Config, log *logger.Logger) InventoryServiceInterface {
	return &InventoryService{repo: repo, vcfg: vcfg, log: log}
}

func (s *InventoryService) Create(ctx context.Context, actor *shop.User, item NewItem) (*shop.Inventory, error) {
	inv := shop.NewInventory(actor, item.BeverageName, item.BeverageType, item.Price)
	inv.Caffeinated = item.Caffeinated
	inv.Flavored = item.Flavored
	inv.OnHand = item.OnHand
	if item.WarnLimit != nil {
		inv.WarnLimit = *item.WarnLimit
	}

	if err := validate.Run(inv, s.vcfg); err != nil {
		return nil, err
	}
	if err := s.repo.Inventories.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.log.Info("inventory_item_created", map[string]any{
		"item_id": inv.ID, "beverage_name": inv.BeverageName,
	})
	return inv, nil
}

func (s *InventoryService) Get(ctx context.Context, id int64) (*shop.Inventory, error) {
	return s.repo.Inventories.Get(ctx, id)
}

func (s *InventoryService) List(ctx context.Context) ([]*shop.Inventory, error) {
	return s.repo.Inventories.List(ctx)
}

func (s *InventoryService) Update(ctx context.Context, actor *shop.User, id int64, ch shop.InventoryChanges) (*shop.Inventory, error) {
	inv, err := s.repo.Inventories.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.Update(actor, ch)
	if err := validate.Run(inv, s.vcfg); err != nil {
		return nil, err
	}
	if err := s.repo.Inventories.Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InventoryService) Deduct(ctx context.Context, actor *shop.User, id int64, quantity int) (int, error) {
	inv, err := s.repo.Inventories.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	remaining, err := inv.Deduct(actor, quantity)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Inventories.Save(ctx, inv); err != nil {
		return 0, err
	}

	s.log.Info("stock_deducted", map[string]any{
		"item_id": inv.ID, "quantity": quantity, "remaining": remaining,
	})
	return remaining, nil
}
