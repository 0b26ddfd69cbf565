package shop

import (
	"errors"
	"fmt"
)

// ErrNegativeQuantity is returned for a negative stock deduction. It signals
// a bug in the caller rather than a recoverable business-rule violation.
var ErrNegativeQuantity = errors.New(`"quantity" must be a positive value`)

// OperationForbiddenError indicates an illegal state transition or an
// item-list mutation attempted outside the CREATED/PENDING states. It is a
// policy violation, not a system fault: callers translate it into a
// user-facing response and carry on.
type OperationForbiddenError struct {
	// CurrentState is the display name of the order's state at the time of
	// the attempt.
	CurrentState string
	// TargetState is the display name of the attempted transition target.
	// Empty for item-list mutations, which have no target state.
	TargetState string
}

func (e *OperationForbiddenError) Error() string {
	if e.TargetState == "" {
		return fmt.Sprintf(
			"an order's item list can only be modified while the order is in the %q or %q state; the current state of the order is %q",
			"CREATED", "PENDING", e.CurrentState,
		)
	}
	return fmt.Sprintf(
		"changing the state of an order from %q to %q is forbidden",
		e.CurrentState, e.TargetState,
	)
}

// OutOfStockError indicates an attempt to add a depleted item to an order.
type OutOfStockError struct {
	Item *Inventory
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("the item %q is out of stock", e.Item.BeverageName)
}

// NotEnoughStockError indicates a stock deduction that would leave an item's
// on-hand quantity negative. No partial deduction occurs.
type NotEnoughStockError struct {
	Item *Inventory
	// Adjustment is the requested deduction.
	Adjustment int
	// CurrentStock is the on-hand quantity at the time of the attempt.
	CurrentStock int
}

func (e *NotEnoughStockError) Error() string {
	return fmt.Sprintf(
		"the current stock %d of item %q is not enough for a deduction by %d units",
		e.CurrentStock, e.Item.BeverageName, e.Adjustment,
	)
}

// OrderEmptyError indicates an operation that requires the order to have at
// least one line.
type OrderEmptyError struct {
	Order *Order
}

func (e *OrderEmptyError) Error() string {
	return fmt.Sprintf("order %d has no associated order items", e.Order.ID)
}

// ItemNotInOrderError indicates that the given inventory item has no line in
// the order's item list.
type ItemNotInOrderError struct {
	Item  *Inventory
	Order *Order
}

func (e *ItemNotInOrderError) Error() string {
	return fmt.Sprintf(
		"the item %q is not part of order %d's item list",
		e.Item.BeverageName, e.Order.ID,
	)
}
