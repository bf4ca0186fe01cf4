package order

import (
	"errors"
	"fmt"
	"math"

	"workshop/internal/core/domain/model/measurement"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrMeasurementsIsNotConstructed = errs.NewValueIsRequiredError("Measurements must be created via NewMeasurements")

// Measurements are the three primary weighings of an order. Net and fine
// metal are always derived from them and never stored on their own.
type Measurements struct {
	totalDelivered float64
	stoneWeight    float64
	quality        float64

	guard guard.ConstructorGuard
}

// NewMeasurements validates gross weight and stone weight as finite and
// non-negative, and quality (purity percent) as within (0, 100]. Stone weight
// above gross weight is allowed; net usage then clamps to zero.
func NewMeasurements(totalDelivered, stoneWeight, quality float64) (Measurements, error) {
	if err := errors.Join(
		validateWeight("totalDelivered", totalDelivered),
		validateWeight("stoneWeight", stoneWeight),
		validateQuality(quality),
	); err != nil {
		return Measurements{}, err
	}

	return Measurements{
		totalDelivered: totalDelivered,
		stoneWeight:    stoneWeight,
		quality:        quality,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (m Measurements) Validate() error {
	return m.guard.Validate(ErrMeasurementsIsNotConstructed)
}

func (m Measurements) TotalDelivered() float64 {
	return m.totalDelivered
}

func (m Measurements) StoneWeight() float64 {
	return m.stoneWeight
}

func (m Measurements) Quality() float64 {
	return m.quality
}

// Derived returns net and fine metal at full precision.
func (m Measurements) Derived() measurement.Result {
	return measurement.Compute(m.totalDelivered, m.stoneWeight, m.quality)
}

func validateWeight(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not a finite weight", v))
	}
	if v < 0 {
		return errs.NewValueIsOutOfRangeError(name, v, 0, math.Inf(1))
	}
	return nil
}

func validateQuality(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > 100 {
		return errs.NewValueIsOutOfRangeErrorWithCause("quality", v, 0, 100, errors.New("purity must be in (0, 100]"))
	}
	return nil
}
