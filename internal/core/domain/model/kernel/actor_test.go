package kernel_test

import (
	"testing"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	t.Run("should trim the display name", func(t *testing.T) {
		a, err := kernel.NewActor("  owner@shop  ")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "owner@shop", a.Name())
	})

	t.Run("should reject blank names", func(t *testing.T) {
		_, err := kernel.NewActor("   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestActorOrSystem(t *testing.T) {
	assert.Equal(t, "staff", kernel.ActorOrSystem("staff").Name())
	assert.Equal(t, kernel.SystemActorName, kernel.ActorOrSystem("").Name())
}

func TestActor_Validate(t *testing.T) {
	var zero kernel.Actor

	assert.Equal(t, kernel.ErrActorIsNotConstructed, zero.Validate())
	require.NoError(t, kernel.SystemActor().Validate())
}
