package order

import (
	"fmt"

	"foodcourt/internal/pkg/errs"
)

// OrderType distinguishes the three roles an order document can play.
type OrderType int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown OrderType = iota

	// TypeSingle is a stand-alone order fulfilled by one shop outside a
	// zone cart.
	TypeSingle

	// TypeZoneMain is the customer-facing aggregate order spanning all
	// shops in one zone cart.
	TypeZoneMain

	// TypeZoneShop is a shop-scoped fulfillment order derived from one
	// basket of a zone_main order.
	TypeZoneShop
)

func getOrderTypeStrings() map[OrderType]string {
	return map[OrderType]string{
		TypeUnknown:  "unknown",
		TypeSingle:   "single",
		TypeZoneMain: "zone_main",
		TypeZoneShop: "zone_shop",
	}
}

// OrderTypeFromString parses a wire/storage order type name.
func OrderTypeFromString(s string) (OrderType, error) {
	for t, name := range getOrderTypeStrings() {
		if name == s && t != TypeUnknown {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a valid order type", s))
}

// Validate checks that the OrderType is one of the defined roles.
func (t OrderType) Validate() error {
	switch t {
	case TypeSingle, TypeZoneMain, TypeZoneShop:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%d is not a valid order type", t))
	}
}

// String returns the lowercase wire name of the order type.
func (t OrderType) String() string {
	if str, ok := getOrderTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
