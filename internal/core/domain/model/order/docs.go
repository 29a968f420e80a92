// Package order contains the order aggregate family for multi-shop zone
// ordering.
//
// A single customer cart placed in a zone (a multi-shop venue such as a food
// court) is materialized as one customer-facing parent order (type zone_main)
// plus one shop-scoped child order (type zone_shop) per shop that owns items
// in the cart. Stand-alone single-shop orders use type single.
//
// The package enforces the core invariants of the family:
//   - the multiset union of child items equals the parent items
//   - child totals sum exactly to the parent total
//   - status transitions follow an explicit transition table
//   - the parent status is a pure function of its children's statuses,
//     computed by AggregateChildren, and is never set independently
//
// Everything here is persistence-free; repositories reconstruct aggregates
// through RestoreOrder.
package order
