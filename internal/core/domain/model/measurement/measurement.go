// Package measurement converts gross metal received into the fine-metal figure
// the workshop is accountable for.
//
//	netUsed = max(0, gross - stone)
//	fine    = netUsed * purity / 100
//
// Compute works in full float64 precision and never fails; range checks on
// its inputs belong to callers. Round is applied only where a figure is
// persisted or shown, so repeated recomputation does not accumulate rounding.
package measurement

import (
	"math"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places kept for persisted and displayed
// weights (milligrams when weights are grams).
const Precision = 3

// Result holds the derived weights of one order, in grams.
type Result struct {
	NetUsed float64
	Fine    float64
}

// Compute derives net metal used and fine metal. Stone weight above gross
// weight clamps net usage to zero.
func Compute(gross, stone, purityPercent float64) Result {
	net := math.Max(0, gross-stone)
	return Result{
		NetUsed: net,
		Fine:    net * purityPercent / 100,
	}
}

// Rounded returns r with both figures rounded to Precision places.
func (r Result) Rounded() Result {
	return Result{NetUsed: Round(r.NetUsed), Fine: Round(r.Fine)}
}

// Round rounds v half away from zero to Precision places. NaN and infinities
// are returned unchanged.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(Precision).InexactFloat64()
}

// Sum adds weights in decimal arithmetic and rounds the total.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(Precision).InexactFloat64()
}

// Format renders a weight with exactly Precision places and a gram suffix.
func Format(grams float64) string {
	if math.IsNaN(grams) || math.IsInf(grams, 0) {
		grams = 0
	}
	return decimal.NewFromFloat(grams).StringFixed(Precision) + "g"
}

// Value multiplies a weight by a rate per gram, rounded to whole currency units.
func Value(grams, ratePerGram float64) float64 {
	if math.IsNaN(grams) || math.IsInf(grams, 0) || math.IsNaN(ratePerGram) || math.IsInf(ratePerGram, 0) {
		return 0
	}
	return decimal.NewFromFloat(grams).Mul(decimal.NewFromFloat(ratePerGram)).Round(0).InexactFloat64()
}
