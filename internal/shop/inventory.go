package shop

import (
	"time"

	"github.com/shopspring/decimal"

	"beverage-shop/internal/audit"
	"beverage-shop/internal/enums"
	"beverage-shop/internal/validate"
)

// BeverageType is the persisted code of an item's beverage kind.
type BeverageType string

const (
	BeverageCoffee BeverageType = "C"
	BeverageTea    BeverageType = "T"
)

// BeverageTypes maps beverage type codes to their display labels.
var BeverageTypes = enums.Set{
	{Code: "C", Label: "COFFEE"},
	{Code: "T", Label: "TEA"},
}

// ItemState is the derived availability state of an inventory item.
type ItemState string

const (
	ItemAvailable    ItemState = "A"
	ItemFewRemaining ItemState = "F"
	ItemOutOfStock   ItemState = "O"
)

// ItemStates maps item state codes to their display labels.
var ItemStates = enums.Set{
	{Code: "A", Label: "AVAILABLE"},
	{Code: "F", Label: "FEW REMAINING"},
	{Code: "O", Label: "OUT OF STOCK"},
}

// DefaultWarnLimit is the warn threshold applied to new items when none is
// given.
const DefaultWarnLimit = 3

// Inventory is one beverage offered by the shop together with its stock
// ledger. The on-hand quantity is mutated only through Deduct.
type Inventory struct {
	ID           int64
	BeverageName string
	BeverageType BeverageType
	Caffeinated  bool
	Flavored     bool
	OnHand       int
	Price        decimal.Decimal
	WarnLimit    int

	audit.Audit
}

// NewInventory creates an item with the domain defaults and stamps the
// creator. Staff-only creation is enforced by the validation rules.
func NewInventory(creator *User, name string, typ BeverageType, price decimal.Decimal) *Inventory {
	inv := &Inventory{
		BeverageName: name,
		BeverageType: typ,
		Price:        price,
		WarnLimit:    DefaultWarnLimit,
	}
	if typ == "" {
		inv.BeverageType = BeverageCoffee
	}
	inv.StampCreate(actor(creator), time.Now().UTC())
	return inv
}

// IsAvailable reports whether the item has comfortably enough stock.
func (i *Inventory) IsAvailable() bool { return i.OnHand > i.WarnLimit }

// IsFewRemaining reports whether the remaining stock is at or below the
// item's warn limit.
func (i *Inventory) IsFewRemaining() bool { return i.OnHand <= i.WarnLimit }

// IsOutOfStock reports whether the item's stock is depleted.
func (i *Inventory) IsOutOfStock() bool { return i.OnHand == 0 }

// State derives the availability state from the on-hand quantity and the
// warn limit. It is never stored.
func (i *Inventory) State() ItemState {
	switch {
	case i.IsOutOfStock():
		return ItemOutOfStock
	case i.IsFewRemaining():
		return ItemFewRemaining
	default:
		return ItemAvailable
	}
}

// StateLabel returns the display label of the derived state.
func (i *Inventory) StateLabel() string {
	label, _ := ItemStates.Label(string(i.State()))
	return label
}

// deductible checks a deduction without applying it.
func (i *Inventory) deductible(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	if i.OnHand-quantity < 0 {
		return &NotEnoughStockError{Item: i, Adjustment: quantity, CurrentStock: i.OnHand}
	}
	return nil
}

// Deduct subtracts the given quantity from the on-hand stock and stamps the
// actor as modifier. A deduction that would leave the stock negative fails
// with NotEnoughStockError and leaves the stock unchanged; a negative
// quantity fails with ErrNegativeQuantity. Returns the remaining stock.
func (i *Inventory) Deduct(by *User, quantity int) (int, error) {
	if err := i.deductible(quantity); err != nil {
		return 0, err
	}
	i.OnHand -= quantity
	i.StampUpdate(actor(by), time.Now().UTC())
	return i.OnHand, nil
}

// InventoryChanges lists the fields an update may touch. Nil fields keep
// their prior value.
type InventoryChanges struct {
	BeverageName *string
	BeverageType *BeverageType
	Caffeinated  *bool
	Flavored     *bool
	Price        *decimal.Decimal
	WarnLimit    *int
}

func (ch InventoryChanges) empty() bool {
	return ch.BeverageName == nil && ch.BeverageType == nil &&
		ch.Caffeinated == nil && ch.Flavored == nil &&
		ch.Price == nil && ch.WarnLimit == nil
}

// Update applies the supplied fields and stamps the modifier. With no
// changes it is a no-op: the timestamp and modifier stay untouched.
func (i *Inventory) Update(modifier *User, ch InventoryChanges) *Inventory {
	if ch.empty() {
		return i
	}
	if ch.BeverageName != nil {
		i.BeverageName = *ch.BeverageName
	}
	if ch.BeverageType != nil {
		i.BeverageType = *ch.BeverageType
	}
	if ch.Caffeinated != nil {
		i.Caffeinated = *ch.Caffeinated
	}
	if ch.Flavored != nil {
		i.Flavored = *ch.Flavored
	}
	if ch.Price != nil {
		i.Price = *ch.Price
	}
	if ch.WarnLimit != nil {
		i.WarnLimit = *ch.WarnLimit
	}
	i.StampUpdate(actor(modifier), time.Now().UTC())
	return i
}

// ValidationRules declares the per-field rules for inventory items.
func (i *Inventory) ValidationRules() validate.Rules {
	return validate.Rules{
		"beverage_type": {Check: i.validateBeverageType},
		"on_hand":       {Check: i.validateOnHand},
		"price":         {Check: i.validatePrice},
		"warn_limit":    {Check: i.validateWarnLimit},
		"created_by":    {Check: i.validateCreatedBy, NonEditable: true},
		"updated_by":    {Check: i.validateUpdatedBy, NonEditable: true},
	}
}

// ValidateObject has no whole-object rule for inventory items.
func (i *Inventory) ValidateObject() error { return nil }

func (i *Inventory) validateBeverageType() error {
	if !BeverageTypes.Valid(string(i.BeverageType)) {
		return validate.Fail("the beverage type of an item must be a known type")
	}
	return nil
}

func (i *Inventory) validateOnHand() error {
	if i.OnHand < 0 {
		return validate.Fail("the available quantity of an item cannot be a negative value")
	}
	return nil
}

func (i *Inventory) validatePrice() error {
	if i.Price.IsNegative() {
		return validate.Fail("the price of an item cannot be negative")
	}
	return nil
}

func (i *Inventory) validateWarnLimit() error {
	if i.WarnLimit < 0 {
		return validate.Fail("the warn limit of an item cannot be a negative value")
	}
	return nil
}

func (i *Inventory) validateCreatedBy() error {
	if i.CreatedBy != nil && !i.CreatedBy.IsStaff() {
		return validate.Fail("only staff users can add new inventory items")
	}
	return nil
}

func (i *Inventory) validateUpdatedBy() error {
	if i.UpdatedBy != nil && !i.UpdatedBy.IsStaff() {
		return validate.Fail("only staff users can modify existing inventory items")
	}
	return nil
}
