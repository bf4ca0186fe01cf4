package services_test

import (
	"errors"
	"testing"

	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInspector struct {
	blank    bool
	err      error
	photoErr error
	seen     []string
}

func (s *stubInspector) CheckImage(payload string) error {
	s.seen = append(s.seen, payload)
	return s.photoErr
}

func (s *stubInspector) IsBlank(payload string) (bool, error) {
	s.seen = append(s.seen, payload)
	return s.blank, s.err
}

func TestDeliveryProofGate_Check(t *testing.T) {
	t.Run("should pass with photo and inked signature", func(t *testing.T) {
		inspector := &stubInspector{}
		gate := services.NewDeliveryProofGate(inspector)

		err := gate.Check(services.ProofPayload{Photo: "data:image/jpeg;base64,AAA", Signature: "data:image/png;base64,BBB"})

		require.NoError(t, err)
		assert.Equal(t, []string{"data:image/jpeg;base64,AAA", "data:image/png;base64,BBB"}, inspector.seen)
	})

	t.Run("should name every missing part", func(t *testing.T) {
		gate := services.NewDeliveryProofGate(&stubInspector{})

		err := gate.Check(services.ProofPayload{Photo: " ", Signature: ""})

		var missing *errs.MissingProofError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"photo", "signature"}, missing.Missing)
	})

	t.Run("should treat a blank canvas as absent", func(t *testing.T) {
		gate := services.NewDeliveryProofGate(&stubInspector{blank: true})

		err := gate.Check(services.ProofPayload{Photo: "p", Signature: "data:image/png;base64,BBB"})

		var missing *errs.MissingProofError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"signature"}, missing.Missing)
	})

	t.Run("should report an undecodable signature as invalid", func(t *testing.T) {
		gate := services.NewDeliveryProofGate(&stubInspector{err: errors.New("bad png")})

		err := gate.Check(services.ProofPayload{Photo: "p", Signature: "data:image/png;base64,???"})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.NotErrorIs(t, err, errs.ErrMissingProof)
	})

	t.Run("should report an undecodable photo as invalid", func(t *testing.T) {
		gate := services.NewDeliveryProofGate(&stubInspector{photoErr: errors.New("illegal base64 data")})

		err := gate.Check(services.ProofPayload{Photo: "not an image!!", Signature: "data:image/png;base64,BBB"})

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "photo", invalid.ParamName)
		assert.NotErrorIs(t, err, errs.ErrMissingProof)
	})

	t.Run("should only check presence without an inspector", func(t *testing.T) {
		gate := services.NewDeliveryProofGate(nil)

		require.NoError(t, gate.Check(services.ProofPayload{Photo: "p", Signature: "s"}))
	})
}
