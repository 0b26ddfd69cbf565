package shop

import (
	"time"

	"beverage-shop/internal/audit"
	"beverage-shop/internal/enums"
	"beverage-shop/internal/validate"
)

// Gender is the persisted code of an employee's gender.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Genders maps gender codes to their display labels.
var Genders = enums.Set{
	{Code: "M", Label: "MALE"},
	{Code: "F", Label: "FEMALE"},
}

// Employee is a shop employee: a profile linked to a staff user. Employees
// review customer orders and may also place orders on a customer's behalf.
type Employee struct {
	ID     int64
	Name   string
	Gender Gender
	User   *User

	audit.Audit
}

// NewEmployee creates an employee profile for the given user and stamps the
// creator.
func NewEmployee(creator *User, name string, gender Gender, user *User) *Employee {
	e := &Employee{
		Name:   name,
		Gender: gender,
		User:   user,
	}
	if gender == "" {
		e.Gender = GenderMale
	}
	e.StampCreate(actor(creator), time.Now().UTC())
	return e
}

// ValidationRules declares the per-field rules for employees.
func (e *Employee) ValidationRules() validate.Rules {
	return validate.Rules{
		"name":       {Check: e.validateName},
		"gender":     {Check: e.validateGender},
		"user":       {Check: e.validateUser},
		"created_by": {Check: e.validateCreatedBy, NonEditable: true},
		"updated_by": {Check: e.validateUpdatedBy, NonEditable: true},
	}
}

// ValidateObject has no whole-object rule for employees.
func (e *Employee) ValidateObject() error { return nil }

func (e *Employee) validateName() error {
	if e.Name == "" {
		return validate.Fail("please provide the employee's name")
	}
	return nil
}

func (e *Employee) validateGender() error {
	if !Genders.Valid(string(e.Gender)) {
		return validate.Fail("the gender of an employee must be a known value")
	}
	return nil
}

func (e *Employee) validateUser() error {
	if e.User == nil {
		return validate.Fail("please provide the user associated with this employee")
	}
	if !e.User.Staff {
		return validate.Fail("the user associated with an employee must be a staff user")
	}
	return nil
}

func (e *Employee) validateCreatedBy() error {
	if e.CreatedBy != nil && !e.CreatedBy.IsStaff() {
		return validate.Fail("only staff users can add new employees")
	}
	return nil
}

func (e *Employee) validateUpdatedBy() error {
	if e.UpdatedBy != nil && !e.UpdatedBy.IsStaff() {
		return validate.Fail("only staff users can modify existing employees' data")
	}
	return nil
}
