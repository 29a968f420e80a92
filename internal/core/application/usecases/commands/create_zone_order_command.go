package commands

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/guard"
)

var (
	ErrCreateZoneOrderCommandIsNotConstructed = errors.New(
		"CreateZoneOrderCommand must be created via NewCreateZoneOrderCommand constructor",
	)
	ErrTableNumberIsRequired   = errors.New("table number is required")
	ErrCustomerNameIsRequired  = errors.New("customer name is required")
	ErrCustomerPhoneIsRequired = errors.New("customer phone is required")
	ErrCartIsEmpty             = errors.New("cart must contain at least one line")
	ErrCartLineIsInvalid       = errors.New("cart line must reference an item with quantity greater than 0")
)

// CartLine is one submitted cart entry: a menu item reference with quantity
// and optional modifiers. Prices are resolved server-side; the client never
// submits them.
type CartLine struct {
	ItemID    kernel.UUID
	Quantity  int
	Modifiers []string
}

// CreateZoneOrderCommand represents one customer's multi-shop cart submission
// for a zone. The handler splits the cart into a zone_main parent and one
// zone_shop child per shop, atomically.
//
// Example:
//
//	cmd, err := NewCreateZoneOrderCommand(zoneID, "T12", "Dana", "+77010001122", "card", lines)
//	if err != nil {
//	    return fmt.Errorf("invalid cart: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateZoneOrderCommand struct { //nolint:recvcheck //using for validation
	zoneID        kernel.UUID
	tableNumber   string
	customerName  string
	customerPhone string
	paymentMethod string
	lines         []CartLine

	guard guard.ConstructorGuard
}

// NewCreateZoneOrderCommand creates a command to submit a zone cart.
// Validates the zone reference, table, customer identity, and that every
// cart line references an item with a positive quantity.
func NewCreateZoneOrderCommand(
	zoneID kernel.UUID,
	tableNumber, customerName, customerPhone, paymentMethod string,
	lines []CartLine,
) (CreateZoneOrderCommand, error) {
	command := CreateZoneOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setZoneID(zoneID),
		command.setTableNumber(tableNumber),
		command.setCustomer(customerName, customerPhone),
		command.setLines(lines),
	); err != nil {
		return CreateZoneOrderCommand{}, err
	}
	command.paymentMethod = paymentMethod

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateZoneOrderCommandIsNotConstructed if validation fails.
func (c CreateZoneOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateZoneOrderCommandIsNotConstructed)
}

// ZoneID returns the venue the cart was submitted in.
func (c CreateZoneOrderCommand) ZoneID() kernel.UUID {
	return c.zoneID
}

// TableNumber returns the customer's table.
func (c CreateZoneOrderCommand) TableNumber() string {
	return c.tableNumber
}

// CustomerName returns the customer display name.
func (c CreateZoneOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the customer phone number.
func (c CreateZoneOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// PaymentMethod returns the declared payment method. Payment settlement is
// out of scope; the method is recorded verbatim.
func (c CreateZoneOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// Lines returns a copy of the submitted cart lines in submission order.
func (c CreateZoneOrderCommand) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateZoneOrderCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}

	c.zoneID = zoneID
	return nil
}

func (c *CreateZoneOrderCommand) setTableNumber(tableNumber string) error {
	if tableNumber == "" {
		return ErrTableNumberIsRequired
	}

	c.tableNumber = tableNumber
	return nil
}

func (c *CreateZoneOrderCommand) setCustomer(name, phone string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	if phone == "" {
		return ErrCustomerPhoneIsRequired
	}

	c.customerName = name
	c.customerPhone = phone
	return nil
}

func (c *CreateZoneOrderCommand) setLines(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrCartIsEmpty
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return ErrCartLineIsInvalid
		}
		if err := line.ItemID.Validate(); err != nil {
			return err
		}
	}

	c.lines = make([]CartLine, len(lines))
	copy(c.lines, lines)
	return nil
}
