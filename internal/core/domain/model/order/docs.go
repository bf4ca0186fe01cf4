// Package order holds the Order aggregate: one production job from intake to
// handover.
//
// The package includes:
//   - Order: the aggregate root with measurements, stage history, amendments
//     and the delivery proof
//   - Stage: the fixed production line Received -> Making -> Polishing ->
//     Ready -> Delivered
//   - Measurements: gross weight, stone weight and purity, from which net and
//     fine metal are derived
//   - DeliveryProof, StageEntry, Amendment: immutable records attached to an order
//
// Key business rules:
//   - an order advances exactly one stage at a time and never moves back
//   - Delivered is terminal and requires a photo and a signature
//   - every transition appends a history entry stamped with the acting user
//   - delivered orders cannot be amended
package order
