package shop

import (
	"time"

	"beverage-shop/internal/audit"
	"beverage-shop/internal/validate"
)

// Customer is a shop customer: a profile linked to a non-staff user that
// places beverage orders.
type Customer struct {
	ID          int64
	Name        string
	Address     string
	PhoneNumber string
	User        *User

	audit.Audit
}

// NewCustomer creates a customer profile for the given user and stamps the
// creator.
func NewCustomer(creator *User, name, address, phone string, user *User) *Customer {
	c := &Customer{
		Name:        name,
		Address:     address,
		PhoneNumber: phone,
		User:        user,
	}
	c.StampCreate(actor(creator), time.Now().UTC())
	return c
}

// MakeOrder creates a new order for this customer, credited to the
// customer's own user.
func (c *Customer) MakeOrder() *Order {
	return NewOrder(c.User, c)
}

// ValidationRules declares the per-field rules for customers.
func (c *Customer) ValidationRules() validate.Rules {
	return validate.Rules{
		"name":       {Check: c.validateName},
		"user":       {Check: c.validateUser},
		"created_by": {Check: c.validateCreatedBy, NonEditable: true},
		"updated_by": {Check: c.validateUpdatedBy, NonEditable: true},
	}
}

// ValidateObject has no whole-object rule for customers.
func (c *Customer) ValidateObject() error { return nil }

func (c *Customer) validateName() error {
	if c.Name == "" {
		return validate.Fail("please provide the customer's name")
	}
	return nil
}

func (c *Customer) validateUser() error {
	if c.User == nil {
		return validate.Fail("please provide the user associated with this customer")
	}
	if c.User.Staff {
		return validate.Fail("the user associated with a customer must be a non-staff user")
	}
	return nil
}

func (c *Customer) validateCreatedBy() error {
	creator := c.CreatedBy
	if creator == nil || c.User == nil {
		return nil
	}
	if !creator.IsStaff() && !audit.Same(creator, c.User) {
		return validate.Fail("only staff users or the user to be associated with the customer can add the customer")
	}
	return nil
}

func (c *Customer) validateUpdatedBy() error {
	modifier := c.UpdatedBy
	if modifier == nil || c.User == nil {
		return nil
	}
	if !modifier.IsStaff() && !audit.Same(modifier, c.User) {
		return validate.Fail("only staff users or the user associated with the customer can modify the customer's details")
	}
	return nil
}
