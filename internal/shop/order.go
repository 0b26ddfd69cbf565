package shop

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"beverage-shop/internal/audit"
	"beverage-shop/internal/enums"
	"beverage-shop/internal/validate"
)

// OrderState is the persisted code of an order's lifecycle state.
type OrderState string

const (
	OrderApproved OrderState = "A"
	OrderCanceled OrderState = "C"
	OrderCreated  OrderState = "N"
	OrderPending  OrderState = "P"
	OrderRejected OrderState = "R"
)

// OrderStates maps order state codes to their display labels.
var OrderStates = enums.Set{
	{Code: "A", Label: "APPROVED"},
	{Code: "C", Label: "CANCELED"},
	{Code: "N", Label: "CREATED"},
	{Code: "P", Label: "PENDING"},
	{Code: "R", Label: "REJECTED"},
}

// Order is a customer order: a list of priced lines moving through a
// one-directional lifecycle.
//
// CREATED -> PENDING -> APPROVED | REJECTED, and CREATED | PENDING ->
// CANCELED. APPROVED, REJECTED and CANCELED are terminal. Approval is the
// only path that adjusts inventory stock.
type Order struct {
	ID         int64
	Customer   *Customer
	State      OrderState
	Handler    *Employee
	ReviewDate *time.Time
	Comments   string
	Items      []*OrderItem

	audit.Audit
}

// NewOrder creates an order for the customer in the CREATED state.
func NewOrder(creator *User, customer *Customer) *Order {
	o := &Order{
		Customer: customer,
		State:    OrderCreated,
	}
	o.StampCreate(actor(creator), time.Now().UTC())
	return o
}

func (o *Order) IsApproved() bool { return o.State == OrderApproved }
func (o *Order) IsCanceled() bool { return o.State == OrderCanceled }
func (o *Order) IsCreated() bool  { return o.State == OrderCreated }
func (o *Order) IsPending() bool  { return o.State == OrderPending }
func (o *Order) IsRejected() bool { return o.State == OrderRejected }

// CanUpdateItems reports whether the item list may be mutated: only while
// the order is CREATED or PENDING.
func (o *Order) CanUpdateItems() bool { return o.IsCreated() || o.IsPending() }

// StateLabel returns the display label of the order's current state.
func (o *Order) StateLabel() string {
	label, _ := OrderStates.Label(string(o.State))
	return label
}

// TotalPrice is the live sum of every line's total. It is never cached.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Items {
		total = total.Add(line.TotalPrice())
	}
	return total
}

// GetItem returns the line for the given inventory item, or nil when the
// item has no line in this order.
func (o *Order) GetItem(item *Inventory) *OrderItem {
	for _, line := range o.Items {
		if line.Item.ID == item.ID {
			return line
		}
	}
	return nil
}

// HasItem reports whether the given inventory item has a line in this order.
func (o *Order) HasItem(item *Inventory) bool { return o.GetItem(item) != nil }

func (o *Order) itemListForbidden() error {
	return &OperationForbiddenError{CurrentState: o.StateLabel()}
}

func (o *Order) transitionForbidden(target OrderState) error {
	label, _ := OrderStates.Label(string(target))
	return &OperationForbiddenError{CurrentState: o.StateLabel(), TargetState: label}
}

// AddItem appends a new line for the given item. Quantity defaults to 1 and
// a nil unit price, or one supplied without staff privilege, defaults to the
// item's current price. Fails with OutOfStockError when the item's stock is
// depleted and with OperationForbiddenError outside CREATED/PENDING.
// Duplicate additions are rejected by the caller's validation layer, not
// here.
func (o *Order) AddItem(by *User, item *Inventory, quantity int, unitPrice *decimal.Decimal) (*OrderItem, error) {
	if !o.CanUpdateItems() {
		return nil, o.itemListForbidden()
	}
	if item.IsOutOfStock() {
		return nil, &OutOfStockError{Item: item}
	}
	line := NewOrderItem(by, o, item, quantity, unitPrice)
	o.Items = append(o.Items, line)
	return line, nil
}

// RemoveItem deletes the line for the given item and returns it. Fails with
// ItemNotInOrderError when no line exists and with OperationForbiddenError
// outside CREATED/PENDING.
func (o *Order) RemoveItem(item *Inventory) (*OrderItem, error) {
	if !o.CanUpdateItems() {
		return nil, o.itemListForbidden()
	}
	for idx, line := range o.Items {
		if line.Item.ID == item.ID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			return line, nil
		}
	}
	return nil, &ItemNotInOrderError{Item: item, Order: o}
}

// UpdateItem applies the supplied changes to the line for the given item.
// Unset fields keep their prior value and the line's price privilege rule
// applies. Fails with ItemNotInOrderError when no line exists and with
// OperationForbiddenError outside CREATED/PENDING.
func (o *Order) UpdateItem(by *User, item *Inventory, ch OrderItemChanges) (*OrderItem, error) {
	if !o.CanUpdateItems() {
		return nil, o.itemListForbidden()
	}
	line := o.GetItem(item)
	if line == nil {
		return nil, &ItemNotInOrderError{Item: item, Order: o}
	}
	return line.Update(by, ch), nil
}

// MarkReadyForReview moves the order from CREATED to PENDING, handing it to
// the employees for review. Fails with OrderEmptyError when the order has no
// lines.
func (o *Order) MarkReadyForReview(by *User) error {
	if !o.IsCreated() {
		return o.transitionForbidden(OrderPending)
	}
	if len(o.Items) == 0 {
		return &OrderEmptyError{Order: o}
	}
	o.State = OrderPending
	o.StampUpdate(actor(by), time.Now().UTC())
	return nil
}

// Approve moves the order from PENDING to APPROVED and deducts every line's
// quantity from its item's stock. The deductions are checked before any
// stock moves, so a failure leaves every line untouched; the first line with
// insufficient stock aborts the whole operation with NotEnoughStockError.
// This is the only method that adjusts inventory stock.
func (o *Order) Approve(employee *Employee, comments string) error {
	if !o.IsPending() {
		return o.transitionForbidden(OrderApproved)
	}
	if len(o.Items) == 0 {
		return &OrderEmptyError{Order: o}
	}

	for _, line := range o.Items {
		if err := line.Item.deductible(line.Quantity); err != nil {
			return err
		}
	}
	for _, line := range o.Items {
		if _, err := line.Item.Deduct(employee.User, line.Quantity); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	o.State = OrderApproved
	o.Handler = employee
	o.ReviewDate = &now
	o.Comments = comments
	o.StampUpdate(actor(employee.User), now)
	return nil
}

// Reject moves the order from PENDING to REJECTED. The reviewing employee
// must say why: blank comments fail with a field-keyed validation error.
func (o *Order) Reject(employee *Employee, comments string) error {
	if !o.IsPending() {
		return o.transitionForbidden(OrderRejected)
	}
	if strings.TrimSpace(comments) == "" {
		return validate.Errors{"comments": {"comments are required when rejecting an order"}}
	}

	now := time.Now().UTC()
	o.State = OrderRejected
	o.Handler = employee
	o.ReviewDate = &now
	o.Comments = comments
	o.StampUpdate(actor(employee.User), now)
	return nil
}

// Cancel moves the order from CREATED or PENDING to CANCELED. Comments are
// optional and set only when given.
func (o *Order) Cancel(by *User, comments string) error {
	if !o.IsCreated() && !o.IsPending() {
		return o.transitionForbidden(OrderCanceled)
	}
	o.State = OrderCanceled
	if comments != "" {
		o.Comments = comments
	}
	o.StampUpdate(actor(by), time.Now().UTC())
	return nil
}

// ValidationRules declares the per-field rules for orders.
func (o *Order) ValidationRules() validate.Rules {
	return validate.Rules{
		"customer":   {Check: o.validateCustomer},
		"state":      {Check: o.validateState},
		"created_by": {Check: o.validateCreatedBy, NonEditable: true},
		"updated_by": {Check: o.validateUpdatedBy, NonEditable: true},
	}
}

// ValidateObject has no whole-object rule for orders.
func (o *Order) ValidateObject() error { return nil }

func (o *Order) validateCustomer() error {
	if o.Customer == nil {
		return validate.Fail("please provide the customer this order belongs to")
	}
	return nil
}

func (o *Order) validateState() error {
	if !OrderStates.Valid(string(o.State)) {
		return validate.Fail("the state of an order must be a known state")
	}
	return nil
}

func (o *Order) validateCreatedBy() error {
	creator := o.CreatedBy
	if creator == nil || o.Customer == nil {
		return nil
	}
	if !creator.IsStaff() && !audit.Same(creator, actor(o.Customer.User)) {
		return validate.Fail("only staff users or the customer associated with this order can add the order")
	}
	return nil
}

func (o *Order) validateUpdatedBy() error {
	modifier := o.UpdatedBy
	if modifier == nil || o.Customer == nil {
		return nil
	}
	if !modifier.IsStaff() && !audit.Same(modifier, actor(o.Customer.User)) {
		return validate.Fail("only staff users or the customer associated with this order can modify the order's details")
	}
	return nil
}
