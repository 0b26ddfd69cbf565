package service

import (
	"context"

	"beverage-shop/internal/repository"
	"beverage-shop/internal/shop"
	"beverage-shop/internal/validate"
)

// NewCustomer carries the caller-supplied properties of a customer profile.
type NewCustomer struct {
	Name        string
	Address     string
	PhoneNumber string
	UserID      int64
}

// NewEmployee carries the caller-supplied properties of an employee profile.
type NewEmployee struct {
	Name   string
	Gender shop.Gender
	UserID int64
}

type AccountServiceInterface interface {
	CreateCustomer(ctx context.Context, actor *shop.User, c NewCustomer) (*shop.Customer, error)
	CreateEmployee(ctx context.Context, actor *shop.User, e NewEmployee) (*shop.Employee, error)
	GetCustomer(ctx context.Context, id int64) (*shop.Customer, error)
}

type AccountService struct {
	repo *repository.Repository
	vcfg validate.Config
}

func NewAccountService(repo *repository.Repository, vcfg validate.Config) AccountServiceInterface {
	return &AccountService{repo: repo, vcfg: vcfg}
}

func (s *AccountService) CreateCustomer(ctx context.Context, actor *shop.User, c NewCustomer) (*shop.Customer, error) {
	user, err := s.repo.Users.Get(ctx, c.UserID)
	if err != nil {
		return nil, err
	}

	customer := shop.NewCustomer(actor, c.Name, c.Address, c.PhoneNumber, user)
	if err := validate.Run(customer, s.vcfg); err != nil {
		return nil, err
	}
	if err := s.repo.Customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *AccountService) CreateEmployee(ctx context.Context, actor *shop.User, e NewEmployee) (*shop.Employee, error) {
	user, err := s.repo.Users.Get(ctx, e.UserID)
	if err != nil {
		return nil, err
	}

	employee := shop.NewEmployee(actor, e.Name, e.Gender, user)
	if err := validate.Run(employee, s.vcfg); err != nil {
		return nil, err
	}
	if err := s.repo.Employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *AccountService) GetCustomer(ctx context.Context, id int64) (*shop.Customer, error) {
	return s.repo.Customers.Get(ctx, id)
}
