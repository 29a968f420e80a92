package order

import (
	"foodcourt/internal/pkg/errs"
)

// Customer identifies the person who placed an order. The phone number keys
// the customer notification channel, so it is required.
type Customer struct {
	name  string
	phone string
}

// NewCustomer creates a validated customer reference.
func NewCustomer(name, phone string) (Customer, error) {
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if phone == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer phone")
	}
	return Customer{name: name, phone: phone}, nil
}

// Name returns the customer display name.
func (c Customer) Name() string { return c.name }

// Phone returns the customer phone number.
func (c Customer) Phone() string { return c.phone }
