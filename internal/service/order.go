package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/repository"
	"beverage-shop/internal/shop"
	"beverage-shop/internal/validate"
)

type OrderServiceInterface interface {
	Create(ctx context.Context, actor *shop.User, customerID int64) (*shop.Order, error)
	Get(ctx context.Context, orderID int64) (*shop.Order, error)
	AddItem(ctx context.Context, actor *shop.User, orderID, itemID int64, quantity int, unitPrice *decimal.Decimal) (*shop.OrderItem, error)
	RemoveItem(ctx context.Context, orderID, itemID int64) (*shop.OrderItem, error)
	UpdateItem(ctx context.Context, actor *shop.User, orderID, itemID int64, ch shop.OrderItemChanges) (*shop.OrderItem, error)
	MarkReady(ctx context.Context, actor *shop.User, orderID int64) (*shop.Order, error)
	Approve(ctx context.Context, actor *shop.User, orderID int64, comments string) (*shop.Order, error)
	Reject(ctx context.Context, actor *shop.User, orderID int64, comments string) (*shop.Order, error)
	Cancel(ctx context.Context, actor *shop.User, orderID int64, comments string) (*shop.Order, error)
}

type OrderService struct {
	repo     *repository.Repository
	notifier shop.Notifier
	vcfg     validate.Config
	log      *logger.Logger
}

func NewOrderService(repo *repository.Repository, notifier shop.Notifier, vcfg validate.Config, log *logger.Logger) OrderServiceInterface {
	return &OrderService{repo: repo, notifier: notifier, vcfg: vcfg, log: log}
}

// notify publishes an order lifecycle event. Delivery is fire-and-forget:
// failures are logged and never surface to the caller, the mutation has
// already been committed.
func (s *OrderService) notify(ctx context.Context, kind shop.OrderEventKind, o *shop.Order) {
	if s.notifier == nil {
		return
	}
	ev := shop.NewOrderEvent(kind, o)
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.log.Error("order_event_publish_failed", err, map[string]any{
			"order_id": o.ID, "event": string(kind),
		})
	}
}

func (s *OrderService) Create(ctx context.Context, actor *shop.User, customerID int64) (*shop.Order, error) {
	customer, err := s.repo.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	order := shop.NewOrder(actor, customer)
	if err := validate.Run(order, s.vcfg); err != nil {
		return nil, err
	}
	if err := s.repo.Orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("order_created", map[string]any{"order_id": order.ID, "customer_id": customer.ID})
	s.notify(ctx, shop.OrderEventCreated, order)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID int64) (*shop.Order, error) {
	return s.repo.Orders.Get(ctx, orderID)
}

func (s *OrderService) AddItem(ctx context.Context, actor *shop.User, orderID, itemID int64, quantity int, unitPrice *decimal.Decimal) (*shop.OrderItem, error) {
	if quantity < 0 {
		return nil, validate.Errors{"quantity": {"the quantity of an order item must be a positive value"}}
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		return nil, validate.Errors{"unit_price": {"the unit price of an order item cannot be negative"}}
	}

	order, err := s.repo.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.Inventories.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// At most one line per (order, item) pair.
	if order.HasItem(item) {
		return nil, validate.Errors{"item": {"this item already exists in this order"}}
	}

	line, err := order.AddItem(actor, item, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	if err := validate.Run(line, s.vcfg); err != nil {
		// Undo the in-memory append before reporting the violation.
		_, _ = order.RemoveItem(item)
		return nil, err
	}
	if err := s.repo.Orders.AddItem(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID int64) (*shop.OrderItem, error) {
	order, err := s.repo.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.Inventories.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	line, err := order.RemoveItem(item)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Orders.RemoveItem(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *OrderService) UpdateItem(ctx context.Context, actor *shop.User, orderID, itemID int64, ch shop.OrderItemChanges) (*shop.OrderItem, error) {
	if ch.Quantity != nil && *ch.Quantity < 1 {
		return nil, validate.Errors{"quantity": {"the quantity of an order item must be a positive value"}}
	}
	if ch.UnitPrice != nil && ch.UnitPrice.IsNegative() {
		return nil, validate.Errors{"unit_price": {"the unit price of an order item cannot be negative"}}
	}

	order, err := s.repo.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.Inventories.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	line, err := order.UpdateItem(actor, item, ch)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Orders.SaveItem(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *OrderService) MarkReady(ctx context.Context, actor *shop.User, orderID int64) (*shop.Order, error) {
	order, err := s.repo.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkReadyForReview(actor); err != nil {
		return nil, err
	}
	if err := s.repo.Orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("order_marked_ready", map[string]any{"order_id": order.ID})
	s.notify(ctx, shop.OrderEventPending, order)
	return order, nil
}

func (s *OrderService) employeeFor(ctx context.Context, actor *shop.User) (*shop.Employee, error) {
	if actor == nil {
		return nil, ErrNotEmployee
	}
	employee, err := s.repo.Employees.GetByUser(ctx, actor.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotEmployee
	}
	return employee, err
}

func (s *OrderService) Approve(ctx context.Context, actor *shop.User, orderID int64, comments string) (*shop.Order, error) {
	employee, err := s.employeeFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Orders.Approve(ctx, orderID, employee, comments)
	if err != nil {
		return nil, err
	}

	s.log.Info("order_approved", map[string]any{"order_id": order.ID, "handler_id": employee.ID})
	s.notify(ctx, shop.OrderEventApproved, order)
	return order, nil
}

func (s *OrderService) Reject(ctx context.Context, actor *shop.User, orderID int64, comments string) (*shop.Order, error) {
	employee, err := s.employeeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	order, err := s.repo.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Reject(employee, comments); err != nil {
		return nil, err
	}
	if err := s.repo.Orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("order_rejected", map[string]any{"order_id": order.ID, "handler_id": employee.ID})
	s.notify(ctx, shop.OrderEventRejected, order)
	return order, nil
}

func (s *OrderService) Cancel(ctx context.Context, actor *shop.User, orderID int64, comments string) (*shop.Order, error) {
	order, err := s.repo.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(actor, comments); err != nil {
		return nil, err
	}
	if err := s.repo.Orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("order_canceled", map[string]any{"order_id": order.ID})
	s.notify(ctx, shop.OrderEventCanceled, order)
	return order, nil
}
