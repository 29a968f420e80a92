// Package services provides domain services that orchestrate business
// operations across multiple order aggregates. It implements workflows that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderSplitter: a domain service partitioning a multi-shop zone cart
//     into one zone_main parent and one zone_shop child per shop
//
// Domain services stay free of persistence and transport concerns; they take
// validated domain input and return fully constructed aggregates.
package services
