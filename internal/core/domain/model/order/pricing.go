package order

import (
	"fmt"
	"sort"

	"foodcourt/internal/pkg/errs"
)

// Pricing is the monetary breakdown of one order in cents. The total is
// always subtotal + tax + serviceFee. Pricing is an immutable value object.
type Pricing struct {
	subtotal   int64
	tax        int64
	serviceFee int64
	total      int64
}

// NewPricing creates a validated pricing breakdown. All components must be
// non-negative; the total is derived, never supplied.
func NewPricing(subtotalCents, taxCents, serviceFeeCents int64) (Pricing, error) {
	for name, v := range map[string]int64{
		"subtotal":   subtotalCents,
		"tax":        taxCents,
		"serviceFee": serviceFeeCents,
	} {
		if v < 0 {
			return Pricing{}, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is negative", v))
		}
	}

	return Pricing{
		subtotal:   subtotalCents,
		tax:        taxCents,
		serviceFee: serviceFeeCents,
		total:      subtotalCents + taxCents + serviceFeeCents,
	}, nil
}

// ComputePricing derives a pricing breakdown from a subtotal and tax/service
// fee rates expressed in basis points (1 bps = 0.01%). Components are rounded
// half-up to whole cents.
func ComputePricing(subtotalCents, taxRateBps, serviceFeeRateBps int64) (Pricing, error) {
	if subtotalCents < 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("subtotal", fmt.Errorf("%d is negative", subtotalCents))
	}
	if taxRateBps < 0 || serviceFeeRateBps < 0 {
		return Pricing{}, errs.NewValueIsInvalidError("rate")
	}

	return NewPricing(
		subtotalCents,
		roundBps(subtotalCents, taxRateBps),
		roundBps(subtotalCents, serviceFeeRateBps),
	)
}

func roundBps(amount, rateBps int64) int64 {
	return (amount*rateBps + 5000) / 10000
}

// Subtotal returns the item subtotal in cents.
func (p Pricing) Subtotal() int64 { return p.subtotal }

// Tax returns the tax amount in cents.
func (p Pricing) Tax() int64 { return p.tax }

// ServiceFee returns the service fee in cents.
func (p Pricing) ServiceFee() int64 { return p.serviceFee }

// Total returns subtotal + tax + serviceFee in cents.
func (p Pricing) Total() int64 { return p.total }

// AllocateShares splits a parent pricing across child baskets proportionally
// to their subtotals, preserving the invariant that child totals sum exactly
// to the parent total.
//
// The child subtotals must sum to the parent subtotal (they are exact by
// construction of the partition). Tax and service fee are distributed by the
// largest-remainder method so no cent is duplicated or lost to rounding.
func AllocateShares(parent Pricing, childSubtotals []int64) ([]Pricing, error) {
	if len(childSubtotals) == 0 {
		return nil, errs.NewValueIsRequiredError("childSubtotals")
	}

	var sum int64
	for _, s := range childSubtotals {
		if s < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("childSubtotal", fmt.Errorf("%d is negative", s))
		}
		sum += s
	}
	if sum != parent.subtotal {
		return nil, errs.NewValueIsInvalidErrorWithCause("childSubtotals",
			fmt.Errorf("children sum to %d, parent subtotal is %d", sum, parent.subtotal))
	}

	taxShares := allocateProportional(parent.tax, childSubtotals)
	feeShares := allocateProportional(parent.serviceFee, childSubtotals)

	shares := make([]Pricing, len(childSubtotals))
	for i, subtotal := range childSubtotals {
		p, err := NewPricing(subtotal, taxShares[i], feeShares[i])
		if err != nil {
			return nil, err
		}
		shares[i] = p
	}
	return shares, nil
}

// allocateProportional distributes amount across weights using the
// largest-remainder method. The returned shares always sum to amount.
func allocateProportional(amount int64, weights []int64) []int64 {
	shares := make([]int64, len(weights))

	var totalWeight int64
	for _, w := range weights {
		totalWeight += w
	}

	if totalWeight == 0 {
		// Degenerate partition (all-zero subtotals): split evenly,
		// leftover cents go to the earliest baskets.
		n := int64(len(weights))
		base, rest := amount/n, amount%n
		for i := range shares {
			shares[i] = base
			if int64(i) < rest {
				shares[i]++
			}
		}
		return shares
	}

	type remainder struct {
		index int
		value int64
	}
	remainders := make([]remainder, len(weights))

	var allocated int64
	for i, w := range weights {
		product := amount * w
		shares[i] = product / totalWeight
		allocated += shares[i]
		remainders[i] = remainder{index: i, value: product % totalWeight}
	}

	sort.SliceStable(remainders, func(a, b int) bool {
		return remainders[a].value > remainders[b].value
	})

	rest := amount - allocated
	for i := int64(0); i < rest; i++ {
		shares[remainders[i].index]++
	}

	return shares
}
