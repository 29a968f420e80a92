package order

import (
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
)

// SystemActor is recorded in status history entries written as a side effect
// of child transitions, since the parent is never mutated directly.
const SystemActor = "system"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through one of the factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via a New*Order factory or RestoreOrder")

	// ErrParentStatusIsDerived is returned when a direct status transition
	// is requested on a zone_main order. The parent status is a pure
	// function of its children and is only changed through
	// ApplyAggregateStatus.
	ErrParentStatusIsDerived = errs.NewBusinessRuleError(errs.CodeValidationFailed,
		"zone_main status is derived from shop orders and cannot be set directly")
)

// Order is the aggregate root for one order document. A single entity type
// plays three roles selected by OrderType: stand-alone single orders, the
// customer-facing zone_main parent, and shop-scoped zone_shop children.
//
// Invariants maintained here:
//   - zone_shop orders always reference a parent and an owning shop
//   - zone_main orders have neither a parent nor an owning shop
//   - the pricing subtotal always equals the sum of item subtotals
//   - status only changes through the transition table (single/zone_shop)
//     or through aggregation over children (zone_main)
//   - every status change appends exactly one history entry
//
// The version field supports optimistic concurrency in the repository: a
// write whose expected version no longer matches the stored row is a
// concurrent modification, never a silent overwrite.
type Order struct {
	id            kernel.UUID
	orderNumber   string
	orderType     OrderType
	parentID      *kernel.UUID
	shopID        *kernel.UUID
	zoneID        kernel.UUID
	tableNumber   string
	customer      Customer
	paymentMethod string
	items         []Item
	pricing       Pricing
	status        Status
	history       []StatusChange
	trace         Traceability
	version       int

	isConstructed bool
}

// NewZoneMainOrder creates the customer-facing parent order of a zone cart.
// Its order number is the family trace code; its items are the full cart.
func NewZoneMainOrder(
	id kernel.UUID,
	zoneID kernel.UUID,
	tableNumber string,
	customer Customer,
	paymentMethod string,
	items []Item,
	pricing Pricing,
	trace Traceability,
	createdAt time.Time,
) (*Order, error) {
	if trace.Sequence() != 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("trace sequence",
			fmt.Errorf("zone_main requires sequence 0, got %d", trace.Sequence()))
	}
	return newOrder(orderSeed{
		id:            id,
		orderType:     TypeZoneMain,
		zoneID:        zoneID,
		tableNumber:   tableNumber,
		customer:      customer,
		paymentMethod: paymentMethod,
		items:         items,
		pricing:       pricing,
		trace:         trace,
		createdAt:     createdAt,
	})
}

// NewZoneShopOrder creates one shop-scoped child order from a basket of the
// parent cart. The sequence must be the child's 1-based basket index.
func NewZoneShopOrder(
	id kernel.UUID,
	parentID kernel.UUID,
	shopID kernel.UUID,
	zoneID kernel.UUID,
	tableNumber string,
	customer Customer,
	paymentMethod string,
	items []Item,
	pricing Pricing,
	trace Traceability,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(parentID.Validate(), shopID.Validate()); err != nil {
		return nil, err
	}
	if trace.Sequence() < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("trace sequence",
			fmt.Errorf("zone_shop requires sequence >= 1, got %d", trace.Sequence()))
	}
	return newOrder(orderSeed{
		id:            id,
		orderType:     TypeZoneShop,
		parentID:      &parentID,
		shopID:        &shopID,
		zoneID:        zoneID,
		tableNumber:   tableNumber,
		customer:      customer,
		paymentMethod: paymentMethod,
		items:         items,
		pricing:       pricing,
		trace:         trace,
		createdAt:     createdAt,
	})
}

// NewSingleOrder creates a stand-alone order fulfilled by one shop outside a
// zone cart.
func NewSingleOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	zoneID kernel.UUID,
	tableNumber string,
	customer Customer,
	paymentMethod string,
	items []Item,
	pricing Pricing,
	trace Traceability,
	createdAt time.Time,
) (*Order, error) {
	if err := shopID.Validate(); err != nil {
		return nil, err
	}
	return newOrder(orderSeed{
		id:            id,
		orderType:     TypeSingle,
		shopID:        &shopID,
		zoneID:        zoneID,
		tableNumber:   tableNumber,
		customer:      customer,
		paymentMethod: paymentMethod,
		items:         items,
		pricing:       pricing,
		trace:         trace,
		createdAt:     createdAt,
	})
}

type orderSeed struct {
	id            kernel.UUID
	orderType     OrderType
	parentID      *kernel.UUID
	shopID        *kernel.UUID
	zoneID        kernel.UUID
	tableNumber   string
	customer      Customer
	paymentMethod string
	items         []Item
	pricing       Pricing
	trace         Traceability
	createdAt     time.Time
}

func newOrder(seed orderSeed) (*Order, error) {
	if err := errors.Join(
		seed.id.Validate(),
		seed.zoneID.Validate(),
		validateItems(seed.items, seed.pricing),
	); err != nil {
		return nil, err
	}
	if seed.customer.Phone() == "" {
		return nil, errs.NewValueIsRequiredError("customer")
	}
	if seed.trace.Code() == "" {
		return nil, errs.NewValueIsRequiredError("trace code")
	}
	if seed.createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	created, err := NewStatusChange(Pending, "customer", "order placed", seed.createdAt)
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(seed.items))
	copy(items, seed.items)

	return &Order{
		id:            seed.id,
		orderNumber:   seed.trace.OrderNumber(),
		orderType:     seed.orderType,
		parentID:      seed.parentID,
		shopID:        seed.shopID,
		zoneID:        seed.zoneID,
		tableNumber:   seed.tableNumber,
		customer:      seed.customer,
		paymentMethod: seed.paymentMethod,
		items:         items,
		pricing:       seed.pricing,
		status:        Pending,
		history:       []StatusChange{created},
		trace:         seed.trace,
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreOrderParams carries every persisted attribute needed to
// reconstruct an Order from storage.
type RestoreOrderParams struct {
	ID            kernel.UUID
	OrderNumber   string
	Type          OrderType
	ParentID      *kernel.UUID
	ShopID        *kernel.UUID
	ZoneID        kernel.UUID
	TableNumber   string
	Customer      Customer
	PaymentMethod string
	Items         []Item
	Pricing       Pricing
	Status        Status
	History       []StatusChange
	Trace         Traceability
	Version       int
}

// RestoreOrder reconstructs an aggregate from persistence without rerunning
// creation-time side effects. Structural invariants are still enforced.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.ZoneID.Validate(),
		p.Type.Validate(),
		p.Status.Validate(),
		validateItems(p.Items, p.Pricing),
	); err != nil {
		return nil, err
	}
	if p.OrderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if p.Type == TypeZoneShop && (p.ParentID == nil || p.ShopID == nil) {
		return nil, errs.NewValueIsRequiredError("zone_shop parent and shop references")
	}
	if p.Type == TypeZoneMain && p.ParentID != nil {
		return nil, errs.NewValueIsInvalidError("zone_main must not reference a parent")
	}
	if p.Version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version")
	}

	items := make([]Item, len(p.Items))
	copy(items, p.Items)
	history := make([]StatusChange, len(p.History))
	copy(history, p.History)

	return &Order{
		id:            p.ID,
		orderNumber:   p.OrderNumber,
		orderType:     p.Type,
		parentID:      p.ParentID,
		shopID:        p.ShopID,
		zoneID:        p.ZoneID,
		tableNumber:   p.TableNumber,
		customer:      p.Customer,
		paymentMethod: p.PaymentMethod,
		items:         items,
		pricing:       p.Pricing,
		status:        p.Status,
		history:       history,
		trace:         p.Trace,
		version:       p.Version,
		isConstructed: true,
	}, nil
}

func validateItems(items []Item, pricing Pricing) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if subtotal := ItemsSubtotal(items); subtotal != pricing.Subtotal() {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("items subtotal %d does not match pricing subtotal %d", subtotal, pricing.Subtotal()))
	}
	return nil
}

// Validate ensures the Order was created through a factory function.
// Call it when accepting aggregates across package boundaries.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-readable unique order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// Type returns the role this order plays in its family.
func (o *Order) Type() OrderType { return o.orderType }

// ParentID returns the parent reference of a zone_shop order, nil otherwise.
func (o *Order) ParentID() *kernel.UUID { return o.parentID }

// ShopID returns the owning shop of a single or zone_shop order, nil on
// zone_main.
func (o *Order) ShopID() *kernel.UUID { return o.shopID }

// ZoneID returns the venue the order belongs to.
func (o *Order) ZoneID() kernel.UUID { return o.zoneID }

// TableNumber returns the table the customer is seated at.
func (o *Order) TableNumber() string { return o.tableNumber }

// Customer returns the ordering customer.
func (o *Order) Customer() Customer { return o.customer }

// PaymentMethod returns the recorded payment method. Payment state itself is
// reconciled out-of-band and never tracked here.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Pricing returns the monetary breakdown of the order.
func (o *Order) Pricing() Pricing { return o.pricing }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// History returns a copy of the append-only status history, oldest first.
func (o *Order) History() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

// Trace returns the family traceability tag.
func (o *Order) Trace() Traceability { return o.trace }

// Version returns the optimistic-concurrency version of the aggregate.
func (o *Order) Version() int { return o.version }

// TransitionTo performs a direct status transition on a single or zone_shop
// order and appends a history entry.
//
// Returns ErrParentStatusIsDerived for zone_main orders and an
// *InvalidTransitionError (with the allowed next statuses) for transitions
// absent from the table; the aggregate is left unchanged on any error.
func (o *Order) TransitionTo(next Status, actor, notes string, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.orderType == TypeZoneMain {
		return ErrParentStatusIsDerived
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	change, err := NewStatusChange(newStatus, actor, notes, at)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.history = append(o.history, change)
	return nil
}

// ApplyAggregateStatus sets the derived status on a zone_main order.
// It reports whether the status actually changed; an unchanged status is a
// no-op with no history entry. The aggregated value may legitimately skip
// table steps, since it is a pure function of the children, not a
// transition of the parent itself.
func (o *Order) ApplyAggregateStatus(next Status, at time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if o.orderType != TypeZoneMain {
		return false, errs.NewValueIsInvalidErrorWithCause("orderType",
			fmt.Errorf("%s cannot carry an aggregated status", o.orderType))
	}
	if err := next.Validate(); err != nil {
		return false, err
	}
	if next == o.status {
		return false, nil
	}

	change, err := NewStatusChange(next, SystemActor, "derived from shop orders", at)
	if err != nil {
		return false, err
	}

	o.status = next
	o.history = append(o.history, change)
	return true, nil
}

// MarkUpdated bumps the optimistic-concurrency version. Repositories call it
// after a successful compare-and-set write so the in-memory aggregate keeps
// matching the stored row.
func (o *Order) MarkUpdated() {
	o.version++
}
