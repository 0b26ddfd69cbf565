package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/repository"
	"beverage-shop/internal/shop"
	"beverage-shop/internal/validate"
)

// recordingNotifier captures every published event kind in order.
type recordingNotifier struct {
	events []shop.OrderEvent
}

func (n *recordingNotifier) Notify(_ context.Context, ev shop.OrderEvent) error {
	n.events = append(n.events, ev)
	return nil
}

func (n *recordingNotifier) kinds() []shop.OrderEventKind {
	kinds := make([]shop.OrderEventKind, 0, len(n.events))
	for _, ev := range n.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

type fixture struct {
	svc      *Service
	repo     *repository.Repository
	notifier *recordingNotifier

	staff    *shop.User
	custUser *shop.User
	customer *shop.Customer
	employee *shop.Employee
	item     *shop.Inventory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory().Stores()

	f := &fixture{repo: repo, notifier: &recordingNotifier{}}
	f.staff = &shop.User{Username: "boss", Staff: true}
	require.NoError(t, repo.Users.Create(ctx, f.staff))
	f.custUser = &shop.User{Username: "jane"}
	require.NoError(t, repo.Users.Create(ctx, f.custUser))

	f.customer = shop.NewCustomer(f.custUser, "Jane", "12 Roast St", "555-0101", f.custUser)
	require.NoError(t, repo.Customers.Create(ctx, f.customer))
	f.employee = shop.NewEmployee(f.staff, "Bob", shop.GenderMale, f.staff)
	require.NoError(t, repo.Employees.Create(ctx, f.employee))

	f.item = shop.NewInventory(f.staff, "Latte", shop.BeverageCoffee, decimal.RequireFromString("10.00"))
	f.item.OnHand = 1000
	f.item.WarnLimit = 100
	require.NoError(t, repo.Inventories.Create(ctx, f.item))

	f.svc = New(repo, f.notifier, validate.Config{}, logger.New("test"))
	return f
}

func (f *fixture) pendingOrder(t *testing.T, quantity int) *shop.Order {
	t.Helper()
	ctx := context.Background()
	order, err := f.svc.Orders.Create(ctx, f.custUser, f.customer.ID)
	require.NoError(t, err)
	_, err = f.svc.Orders.AddItem(ctx, f.custUser, order.ID, f.item.ID, quantity, nil)
	require.NoError(t, err)
	_, err = f.svc.Orders.MarkReady(ctx, f.custUser, order.ID)
	require.NoError(t, err)
	return order
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.Orders.Create(ctx, f.custUser, f.customer.ID)
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.True(t, order.IsCreated())
	assert.Equal(t, []shop.OrderEventKind{shop.OrderEventCreated}, f.notifier.kinds())
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, "555-0101", f.notifier.events[0].PhoneNumber)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Orders.Create(context.Background(), f.custUser, 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, f.notifier.events)
}

func TestAddItemRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.Orders.Create(ctx, f.custUser, f.customer.ID)
	require.NoError(t, err)

	_, err = f.svc.Orders.AddItem(ctx, f.custUser, order.ID, f.item.ID, 2, nil)
	require.NoError(t, err)

	_, err = f.svc.Orders.AddItem(ctx, f.custUser, order.ID, f.item.ID, 1, nil)

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "item")
	assert.Len(t, order.Items, 1)
}

func TestAddItemNegativeQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.Orders.Create(ctx, f.custUser, f.customer.ID)
	require.NoError(t, err)

	_, err = f.svc.Orders.AddItem(ctx, f.custUser, order.ID, f.item.ID, -1, nil)

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "quantity")
}

func TestAddItemOutOfStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.item.OnHand = 0
	order, err := f.svc.Orders.Create(ctx, f.custUser, f.customer.ID)
	require.NoError(t, err)

	_, err = f.svc.Orders.AddItem(ctx, f.custUser, order.ID, f.item.ID, 1, nil)

	var oos *shop.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Empty(t, order.Items)
}

func TestApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.pendingOrder(t, 50)

	approved, err := f.svc.Orders.Approve(ctx, f.staff, order.ID, "enjoy")
	require.NoError(t, err)

	assert.True(t, approved.IsApproved())
	assert.Equal(t, 950, f.item.OnHand)
	assert.Equal(t, f.employee.ID, approved.Handler.ID)
	assert.Equal(t, []shop.OrderEventKind{
		shop.OrderEventCreated, shop.OrderEventPending, shop.OrderEventApproved,
	}, f.notifier.kinds())
}

func TestApproveRequiresEmployee(t *testing.T) {
	f := newFixture(t)
	order := f.pendingOrder(t, 1)

	_, err := f.svc.Orders.Approve(context.Background(), f.custUser, order.ID, "")
	assert.ErrorIs(t, err, ErrNotEmployee)

	_, err = f.svc.Orders.Approve(context.Background(), nil, order.ID, "")
	assert.ErrorIs(t, err, ErrNotEmployee)
}

func TestApproveInsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.pendingOrder(t, 50)
	f.item.OnHand = 10

	_, err := f.svc.Orders.Approve(ctx, f.staff, order.ID, "")

	var short *shop.NotEnoughStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 10, f.item.OnHand)

	reloaded, err := f.svc.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsPending())
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.pendingOrder(t, 1)

	_, err := f.svc.Orders.Reject(ctx, f.staff, order.ID, "")
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "comments")

	rejected, err := f.svc.Orders.Reject(ctx, f.staff, order.ID, "out of season")
	require.NoError(t, err)
	assert.True(t, rejected.IsRejected())
	assert.Equal(t, shop.OrderEventRejected, f.notifier.events[len(f.notifier.events)-1].Kind)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.Orders.Create(ctx, f.custUser, f.customer.ID)
	require.NoError(t, err)

	canceled, err := f.svc.Orders.Cancel(ctx, f.custUser, order.ID, "changed my mind")
	require.NoError(t, err)

	assert.True(t, canceled.IsCanceled())
	assert.Equal(t, shop.OrderEventCanceled, f.notifier.events[len(f.notifier.events)-1].Kind)
}

func TestUpdateItemPriceIgnoredForNonStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.Orders.Create(ctx, f.custUser, f.customer.ID)
	require.NoError(t, err)
	_, err = f.svc.Orders.AddItem(ctx, f.custUser, order.ID, f.item.ID, 1, nil)
	require.NoError(t, err)

	override := decimal.RequireFromString("1.00")
	line, err := f.svc.Orders.UpdateItem(ctx, f.custUser, order.ID, f.item.ID, shop.OrderItemChanges{UnitPrice: &override})
	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("10.00")))

	line, err = f.svc.Orders.UpdateItem(ctx, f.staff, order.ID, f.item.ID, shop.OrderItemChanges{UnitPrice: &override})
	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(override))
}

func TestRemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.Orders.Create(ctx, f.custUser, f.customer.ID)
	require.NoError(t, err)
	_, err = f.svc.Orders.AddItem(ctx, f.custUser, order.ID, f.item.ID, 1, nil)
	require.NoError(t, err)

	_, err = f.svc.Orders.RemoveItem(ctx, order.ID, f.item.ID)
	require.NoError(t, err)
	assert.Empty(t, order.Items)

	_, err = f.svc.Orders.RemoveItem(ctx, order.ID, f.item.ID)
	var missing *shop.ItemNotInOrderError
	require.ErrorAs(t, err, &missing)
}
