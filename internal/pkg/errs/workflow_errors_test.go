package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("received", "ready")

	assert.Equal(t, "invalid transition: received -> ready", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.False(t, errs.IsValidation(err))
}

func TestMissingProofError(t *testing.T) {
	t.Run("should list missing parts", func(t *testing.T) {
		err := errs.NewMissingProofError("photo", "signature")

		assert.Equal(t, "missing delivery proof: photo, signature", err.Error())
		require.ErrorIs(t, err, errs.ErrMissingProof)
	})

	t.Run("should fall back to sentinel text without parts", func(t *testing.T) {
		err := errs.NewMissingProofError()

		assert.Equal(t, "missing delivery proof", err.Error())
	})
}

func TestPersistenceFailureError(t *testing.T) {
	t.Run("should expose both sentinel and cause", func(t *testing.T) {
		err := errs.NewPersistenceFailureError("commit", context.DeadlineExceeded)

		require.ErrorIs(t, err, errs.ErrPersistenceFailure)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, "persistence failure: commit (cause: context deadline exceeded)", err.Error())
	})

	t.Run("should not wrap twice", func(t *testing.T) {
		first := errs.AsPersistenceFailure("upload", errors.New("bucket unavailable"))
		second := errs.AsPersistenceFailure("commit", first)

		assert.Same(t, first, second)
	})

	t.Run("should keep nil", func(t *testing.T) {
		require.NoError(t, errs.AsPersistenceFailure("commit", nil))
	})
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("clientId")))
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("quality")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("quality", 120, 0, 100)))
	assert.True(t, errs.IsValidation(fmt.Errorf("wrapped: %w", errs.NewValueIsInvalidError("phone"))))
	assert.True(t, errs.IsValidation(errors.Join(errors.New("other"), errs.NewValueIsRequiredError("name"))))
	assert.False(t, errs.IsValidation(errs.NewObjectNotFoundError("order", "1")))
	assert.False(t, errs.IsValidation(errs.NewMissingProofError("photo")))
	assert.False(t, errs.IsValidation(errs.NewVersionIsInvalidError("order")))
	assert.False(t, errs.IsValidation(nil))
}
