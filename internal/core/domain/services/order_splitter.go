package services

import (
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/errs"
)

// Basket groups the cart lines destined for one shop, in the order the
// customer submitted them.
type Basket struct {
	ShopID kernel.UUID
	Items  []order.Item
}

// Family is the atomic result of splitting a zone cart: the customer-facing
// parent plus one child per shop, all sharing a trace code. Children are
// ordered by their 1-based sequence, matching basket submission order.
type Family struct {
	Parent   *order.Order
	Children []*order.Order
}

// All returns the family members as a flat slice, parent first, for callers
// that persist or publish the family as one unit.
func (f Family) All() []*order.Order {
	all := make([]*order.Order, 0, len(f.Children)+1)
	all = append(all, f.Parent)
	return append(all, f.Children...)
}

// SplitRequest carries the validated cart of one zone order submission.
type SplitRequest struct {
	ZoneID        kernel.UUID
	TableNumber   string
	Customer      order.Customer
	PaymentMethod string
	Baskets       []Basket
	SubmittedAt   time.Time
}

// OrderSplitter is a domain service that turns a multi-shop zone cart into
// an order family.
//
// Business rules:
//   - the parent carries the full cart; each child carries exactly one
//     shop's basket, so the children partition the parent's items
//   - pricing is computed once on the parent (tax and service fee rates in
//     basis points, half-up rounding) and allocated over the children by the
//     largest-remainder method, so child totals sum exactly to the parent
//     total
//   - the whole family shares one freshly generated trace code; the parent's
//     order number is the code itself, children append their basket index
//   - splitting is all-or-nothing: any invalid basket fails the whole split
//     and no partial family is returned
type OrderSplitter struct {
	taxRateBps        int64
	serviceFeeRateBps int64
}

// NewOrderSplitter creates an OrderSplitter with the venue's tax and service
// fee rates in basis points (700 = 7%).
func NewOrderSplitter(taxRateBps, serviceFeeRateBps int64) (OrderSplitter, error) {
	if taxRateBps < 0 {
		return OrderSplitter{}, errs.NewValueIsInvalidError("taxRateBps")
	}
	if serviceFeeRateBps < 0 {
		return OrderSplitter{}, errs.NewValueIsInvalidError("serviceFeeRateBps")
	}
	return OrderSplitter{taxRateBps: taxRateBps, serviceFeeRateBps: serviceFeeRateBps}, nil
}

// Split builds the order family for one cart submission.
//
// Returns errs.ErrValueIsRequired wrapped errors for an empty cart or empty
// baskets, and errs.NewValueIsInvalidError when a shop appears in more than
// one basket. Aggregate construction errors propagate unchanged.
func (s OrderSplitter) Split(req SplitRequest) (Family, error) {
	if len(req.Baskets) == 0 {
		return Family{}, errs.NewValueIsRequiredError("baskets")
	}

	seen := make(map[kernel.UUID]bool, len(req.Baskets))
	cart := make([]order.Item, 0)
	subtotals := make([]int64, 0, len(req.Baskets))
	for _, basket := range req.Baskets {
		if err := basket.ShopID.Validate(); err != nil {
			return Family{}, err
		}
		if seen[basket.ShopID] {
			return Family{}, errs.NewValueIsInvalidError("baskets: duplicate shop " + basket.ShopID.String())
		}
		seen[basket.ShopID] = true
		if len(basket.Items) == 0 {
			return Family{}, errs.NewValueIsRequiredError("basket items")
		}
		cart = append(cart, basket.Items...)
		subtotals = append(subtotals, order.ItemsSubtotal(basket.Items))
	}

	parentPricing, err := order.ComputePricing(order.ItemsSubtotal(cart), s.taxRateBps, s.serviceFeeRateBps)
	if err != nil {
		return Family{}, err
	}
	shares, err := order.AllocateShares(parentPricing, subtotals)
	if err != nil {
		return Family{}, err
	}

	code := order.NewTraceCode()
	parentTrace, err := order.NewTraceability(code, 0)
	if err != nil {
		return Family{}, err
	}
	parent, err := order.NewZoneMainOrder(
		kernel.NewUUID(), req.ZoneID, req.TableNumber, req.Customer, req.PaymentMethod,
		cart, parentPricing, parentTrace, req.SubmittedAt,
	)
	if err != nil {
		return Family{}, err
	}

	children := make([]*order.Order, 0, len(req.Baskets))
	for i, basket := range req.Baskets {
		trace, traceErr := order.NewTraceability(code, i+1)
		if traceErr != nil {
			return Family{}, traceErr
		}
		child, childErr := order.NewZoneShopOrder(
			kernel.NewUUID(), parent.ID(), basket.ShopID, req.ZoneID, req.TableNumber,
			req.Customer, req.PaymentMethod, basket.Items, shares[i], trace, req.SubmittedAt,
		)
		if childErr != nil {
			return Family{}, childErr
		}
		children = append(children, child)
	}

	return Family{Parent: parent, Children: children}, nil
}
