package order_test

import (
	"math"
	"testing"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeasurements(t *testing.T) {
	t.Run("should derive net and fine metal", func(t *testing.T) {
		m, err := order.NewMeasurements(10.5, 0.5, 91.6)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		r := m.Derived().Rounded()
		assert.Equal(t, 10.0, r.NetUsed)
		assert.Equal(t, 9.16, r.Fine)
	})

	t.Run("should clamp net usage when stones outweigh the gross", func(t *testing.T) {
		m, err := order.NewMeasurements(1, 2, 91.6)

		require.NoError(t, err)
		assert.Zero(t, m.Derived().NetUsed)
		assert.Zero(t, m.Derived().Fine)
	})

	t.Run("should accept pure metal", func(t *testing.T) {
		m, err := order.NewMeasurements(5, 0, 100)

		require.NoError(t, err)
		assert.Equal(t, 5.0, m.Derived().Fine)
	})

	t.Run("should reject negative and non-finite weights", func(t *testing.T) {
		_, err := order.NewMeasurements(-1, math.NaN(), 91.6)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "totalDelivered")
		assert.Contains(t, err.Error(), "stoneWeight")
	})

	t.Run("should reject purity outside (0, 100]", func(t *testing.T) {
		for _, q := range []float64{0, -5, 100.1, math.Inf(1)} {
			_, err := order.NewMeasurements(10, 0, q)

			require.Error(t, err, "quality %v", q)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should fail validation for a zero value", func(t *testing.T) {
		var m order.Measurements

		assert.ErrorIs(t, m.Validate(), order.ErrMeasurementsIsNotConstructed)
	})
}
