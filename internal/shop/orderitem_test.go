package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer() *Customer {
	return NewCustomer(customerUser(), "Jane", "12 Roast St", "555-0101", customerUser())
}

func testItem(onHand int) *Inventory {
	inv := NewInventory(staffUser(), "Latte", BeverageCoffee, price("10.00"))
	inv.OnHand = onHand
	return inv
}

func TestNewOrderItemDefaults(t *testing.T) {
	order := testCustomer().MakeOrder()
	line := NewOrderItem(customerUser(), order, testItem(10), 0, nil)

	assert.Equal(t, 1, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(price("10.00")))
}

func TestNewOrderItemPricePrivilege(t *testing.T) {
	order := testCustomer().MakeOrder()
	override := price("100.00")

	// A non-staff creator's price override is ignored.
	line := NewOrderItem(customerUser(), order, testItem(10), 1, &override)
	assert.True(t, line.UnitPrice.Equal(price("10.00")))

	// A staff creator's override sticks.
	line = NewOrderItem(staffUser(), order, testItem(10), 1, &override)
	assert.True(t, line.UnitPrice.Equal(price("100.00")))

	// An anonymous creator falls back to the item price.
	line = NewOrderItem(nil, order, testItem(10), 1, &override)
	assert.True(t, line.UnitPrice.Equal(price("10.00")))
}

func TestOrderItemTotalPrice(t *testing.T) {
	order := testCustomer().MakeOrder()
	line := NewOrderItem(customerUser(), order, testItem(10), 3, nil)

	assert.True(t, line.TotalPrice().Equal(price("30.00")))
}

func TestOrderItemUpdatePricePrivilege(t *testing.T) {
	order := testCustomer().MakeOrder()
	line := NewOrderItem(customerUser(), order, testItem(10), 1, nil)
	override := price("1.00")

	line.Update(customerUser(), OrderItemChanges{UnitPrice: &override})
	assert.True(t, line.UnitPrice.Equal(price("10.00")))

	line.Update(staffUser(), OrderItemChanges{UnitPrice: &override})
	assert.True(t, line.UnitPrice.Equal(price("1.00")))
}

func TestOrderItemUpdateNoChangesIsNoOp(t *testing.T) {
	order := testCustomer().MakeOrder()
	line := NewOrderItem(customerUser(), order, testItem(10), 1, nil)
	updatedAt := line.UpdatedAt

	line.Update(customerUser(), OrderItemChanges{})
	assert.Equal(t, updatedAt, line.UpdatedAt)

	// A price-only change from a non-staff modifier degrades to a no-op.
	override := price("1.00")
	line.Update(customerUser(), OrderItemChanges{UnitPrice: &override})
	assert.Equal(t, updatedAt, line.UpdatedAt)
	assert.Nil(t, line.UpdatedBy)
}

func TestOrderItemUpdateQuantity(t *testing.T) {
	order := testCustomer().MakeOrder()
	line := NewOrderItem(customerUser(), order, testItem(10), 1, nil)
	qty := 4

	line.Update(customerUser(), OrderItemChanges{Quantity: &qty})

	assert.Equal(t, 4, line.Quantity)
	require.NotNil(t, line.UpdatedBy)
	assert.Equal(t, customerUser().ID, line.UpdatedBy.ActorID())
}
