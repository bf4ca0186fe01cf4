package order_test

import (
	"testing"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage    order.Stage
		expected string
	}{
		{order.Received, "received"},
		{order.Making, "making"},
		{order.Polishing, "polishing"},
		{order.Ready, "ready"},
		{order.Delivered, "delivered"},
		{order.StageUnknown, "unknown"},
		{order.Stage(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stage.String())
		})
	}
}

func TestParseStage(t *testing.T) {
	t.Run("should parse case-insensitively", func(t *testing.T) {
		s, err := order.ParseStage(" Polishing ")

		require.NoError(t, err)
		assert.Equal(t, order.Polishing, s)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStage("shipped")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStage_Next(t *testing.T) {
	t.Run("should walk the whole line", func(t *testing.T) {
		var walked []order.Stage
		for s, ok := order.Received, true; ok; s, ok = s.Next() {
			walked = append(walked, s)
		}

		assert.Equal(t, order.Stages(), walked)
	})

	t.Run("should have no successor after Delivered", func(t *testing.T) {
		_, ok := order.Delivered.Next()

		assert.False(t, ok)
		assert.True(t, order.Delivered.IsTerminal())
	})
}

func TestStage_AdvanceTo(t *testing.T) {
	t.Run("should allow each immediate successor", func(t *testing.T) {
		stages := order.Stages()
		for i := 0; i < len(stages)-1; i++ {
			next, err := stages[i].AdvanceTo(stages[i+1])

			require.NoError(t, err)
			assert.Equal(t, stages[i+1], next)
		}
	})

	t.Run("should reject skipping, staying and moving back", func(t *testing.T) {
		cases := []struct{ from, to order.Stage }{
			{order.Received, order.Ready},
			{order.Received, order.Delivered},
			{order.Making, order.Making},
			{order.Ready, order.Received},
			{order.Delivered, order.Delivered},
		}

		for _, c := range cases {
			_, err := c.from.AdvanceTo(c.to)

			require.Error(t, err, "%s -> %s", c.from, c.to)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		}
	})

	t.Run("should report both ends of a rejected transition", func(t *testing.T) {
		_, err := order.Received.AdvanceTo(order.Ready)

		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "received", transitionErr.From)
		assert.Equal(t, "ready", transitionErr.To)
	})

	t.Run("should reject an invalid target as a validation error", func(t *testing.T) {
		_, err := order.Received.AdvanceTo(order.StageUnknown)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
