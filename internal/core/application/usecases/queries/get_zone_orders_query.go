package queries

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/guard"
)

var (
	ErrGetZoneOrdersQueryIsNotConstructed = errors.New(
		"GetZoneOrdersQuery must be created via NewGetZoneOrdersQuery constructor",
	)
)

// GetZoneOrdersQuery retrieves the active orders of one zone for the staff
// dashboard: every customer-facing order (zone_main or single) that has not
// reached a terminal status, with per-shop progress counts.
//
// Example:
//
//	query, err := NewGetZoneOrdersQuery(zoneID)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	fmt.Printf("%d active orders in zone\n", len(orders))
type GetZoneOrdersQuery struct {
	zoneID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetZoneOrdersQuery creates a query for one zone's active orders.
func NewGetZoneOrdersQuery(zoneID kernel.UUID) (GetZoneOrdersQuery, error) {
	if err := zoneID.Validate(); err != nil {
		return GetZoneOrdersQuery{}, err
	}

	return GetZoneOrdersQuery{
		zoneID: zoneID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetZoneOrdersQueryIsNotConstructed if validation fails.
func (q GetZoneOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetZoneOrdersQueryIsNotConstructed)
}

// ZoneID returns the zone being listed.
func (q GetZoneOrdersQuery) ZoneID() kernel.UUID {
	return q.zoneID
}

// GetZoneOrdersQueryResponse is one active order row on the zone dashboard.
// Shop counts are zero for single orders, which have no children.
type GetZoneOrdersQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	OrderType      string
	TableNumber    string
	CustomerName   string
	Status         string
	TotalCents     int64
	TotalShops     int
	ReadyShops     int
	CompletedShops int
	CancelledShops int
}
