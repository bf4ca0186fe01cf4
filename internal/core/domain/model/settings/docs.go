// Package settings holds the workshop-wide configuration record: gold rates
// for valuation and the shop details printed on receipts.
package settings
