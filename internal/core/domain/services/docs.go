// Package services provides domain services that do not belong to a single
// aggregate.
//
// The package includes:
//   - DeliveryProofGate: the precondition checked before the terminal transition
//     and before any handover media is uploaded
//   - Ledger: pure read-side projections over orders (totals, status counts,
//     per-client rollups, recent activity, today metrics)
package services
