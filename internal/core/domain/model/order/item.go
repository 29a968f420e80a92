package order

import (
	"fmt"

	"foodcourt/internal/pkg/errs"
)

// Item is a line item on an order: a named menu entry with quantity, unit
// price in cents, optional modifiers, and its own fulfillment status.
// Item is an immutable value object.
type Item struct {
	name        string
	quantity    int
	unitPrice   int64
	modifiers   []string
	fulfillment Status
}

// NewItem creates a validated line item in pending fulfillment state.
// Quantity must be positive and the unit price non-negative.
func NewItem(name string, quantity int, unitPriceCents int64, modifiers []string) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPriceCents < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPriceCents))
	}

	return Item{
		name:        name,
		quantity:    quantity,
		unitPrice:   unitPriceCents,
		modifiers:   copyStrings(modifiers),
		fulfillment: Pending,
	}, nil
}

// RestoreItem reconstructs a line item from persistence, including its
// fulfillment status.
func RestoreItem(name string, quantity int, unitPriceCents int64, modifiers []string, fulfillment Status) (Item, error) {
	item, err := NewItem(name, quantity, unitPriceCents, modifiers)
	if err != nil {
		return Item{}, err
	}
	if err = fulfillment.Validate(); err != nil {
		return Item{}, err
	}
	item.fulfillment = fulfillment
	return item, nil
}

// Name returns the menu entry name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the unit price in cents.
func (i Item) UnitPrice() int64 {
	return i.unitPrice
}

// Modifiers returns a copy of the item modifiers.
func (i Item) Modifiers() []string {
	return copyStrings(i.modifiers)
}

// Fulfillment returns the per-item fulfillment status.
func (i Item) Fulfillment() Status {
	return i.fulfillment
}

// Subtotal returns quantity times unit price in cents.
func (i Item) Subtotal() int64 {
	return int64(i.quantity) * i.unitPrice
}

// Key returns a comparison key identifying equal line items across the
// parent/children partition: same name, quantity, price, and modifiers.
func (i Item) Key() string {
	return fmt.Sprintf("%s|%d|%d|%v", i.name, i.quantity, i.unitPrice, i.modifiers)
}

// ItemsSubtotal sums the subtotals of the given items in cents.
func ItemsSubtotal(items []Item) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Subtotal()
	}
	return sum
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
