package shop

import (
	"time"

	"github.com/shopspring/decimal"

	"beverage-shop/internal/audit"
	"beverage-shop/internal/validate"
)

// OrderItem is one line of an order: a priced quantity of a single inventory
// item. At most one line per (order, item) pair exists; the order's mutators
// and the service-level duplicate check uphold that, not the storage layer.
type OrderItem struct {
	ID        int64
	Order     *Order
	Item      *Inventory
	Quantity  int
	UnitPrice decimal.Decimal

	audit.Audit
}

// NewOrderItem builds a line for the given item. Quantity defaults to 1. The
// unit price defaults to the item's current price when no price is supplied
// or when the creator is absent or lacks staff privilege: a price supplied
// by a non-staff creator is silently discarded.
func NewOrderItem(creator *User, order *Order, item *Inventory, quantity int, unitPrice *decimal.Decimal) *OrderItem {
	if quantity < 1 {
		quantity = 1
	}
	price := item.Price
	if unitPrice != nil && creator.IsStaff() {
		price = *unitPrice
	}
	line := &OrderItem{
		Order:     order,
		Item:      item,
		Quantity:  quantity,
		UnitPrice: price,
	}
	line.StampCreate(actor(creator), time.Now().UTC())
	return line
}

// TotalPrice is the line total: unit price times quantity.
func (oi *OrderItem) TotalPrice() decimal.Decimal {
	return oi.UnitPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// OrderItemChanges lists the fields an update may touch. Nil fields keep
// their prior value.
type OrderItemChanges struct {
	Quantity  *int
	UnitPrice *decimal.Decimal
}

func (ch OrderItemChanges) empty() bool {
	return ch.Quantity == nil && ch.UnitPrice == nil
}

// Update applies the supplied fields and stamps the modifier. A unit-price
// change from a modifier without staff privilege is silently dropped; the
// remaining changes still apply. With no effective changes the call is a
// no-op.
func (oi *OrderItem) Update(modifier *User, ch OrderItemChanges) *OrderItem {
	if !modifier.IsStaff() {
		ch.UnitPrice = nil
	}
	if ch.empty() {
		return oi
	}
	if ch.Quantity != nil {
		oi.Quantity = *ch.Quantity
	}
	if ch.UnitPrice != nil {
		oi.UnitPrice = *ch.UnitPrice
	}
	oi.StampUpdate(actor(modifier), time.Now().UTC())
	return oi
}

// ValidationRules declares the per-field rules for order lines.
func (oi *OrderItem) ValidationRules() validate.Rules {
	return validate.Rules{
		"quantity":   {Check: oi.validateQuantity},
		"unit_price": {Check: oi.validateUnitPrice},
		"created_by": {Check: oi.validateCreatedBy, NonEditable: true},
		"updated_by": {Check: oi.validateUpdatedBy, NonEditable: true},
	}
}

// ValidateObject has no whole-object rule for order lines.
func (oi *OrderItem) ValidateObject() error { return nil }

func (oi *OrderItem) validateQuantity() error {
	if oi.Quantity < 1 {
		return validate.Fail("the quantity of an order item must be a positive value")
	}
	return nil
}

func (oi *OrderItem) validateUnitPrice() error {
	if oi.UnitPrice.IsNegative() {
		return validate.Fail("the unit price of an order item cannot be negative")
	}
	return nil
}

func (oi *OrderItem) validateCreatedBy() error {
	creator := oi.CreatedBy
	if creator == nil || oi.Order == nil || oi.Order.Customer == nil {
		return nil
	}
	if !creator.IsStaff() && !audit.Same(creator, actor(oi.Order.Customer.User)) {
		return validate.Fail("only staff users or the customer associated with an order-item's order can add the order-item")
	}
	return nil
}

func (oi *OrderItem) validateUpdatedBy() error {
	modifier := oi.UpdatedBy
	if modifier == nil || oi.Order == nil || oi.Order.Customer == nil {
		return nil
	}
	if !modifier.IsStaff() && !audit.Same(modifier, actor(oi.Order.Customer.User)) {
		return validate.Fail("only staff users or the customer associated with an order-item's order can modify the order-item's details")
	}
	return nil
}
