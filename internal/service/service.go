// Package service orchestrates the domain: it loads entities, runs
// validation, invokes the state machine and persists the result, emitting a
// lifecycle event after every committed order transition.
package service

import (
	"errors"

	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/repository"
	"beverage-shop/internal/shop"
	"beverage-shop/internal/validate"
)

// ErrNotEmployee is returned when an order review is attempted by a user
// without an employee profile.
var ErrNotEmployee = errors.New("the acting user is not an employee")

type Service struct {
	Orders    OrderServiceInterface
	Inventory InventoryServiceInterface
	Accounts  AccountServiceInterface
}

func New(repo *repository.Repository, notifier shop.Notifier, vcfg validate.Config, log *logger.Logger) *Service {
	return &Service{
		Orders:    NewOrderService(repo, notifier, vcfg, log),
		Inventory: NewInventoryService(repo, vcfg, log),
		Accounts:  NewAccountService(repo, vcfg),
	}
}
