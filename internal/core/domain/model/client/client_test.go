package client_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() client.Details {
	return client.Details{Name: "Meera Jewellers", Phone: "+91 98300 00000", Address: "Bowbazar", GSTNumber: "19abcde1234f1z5"}
}

func TestNewClient(t *testing.T) {
	createdAt := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should create client with zero accumulators", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := client.NewClient(id, validDetails(), createdAt)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Meera Jewellers", c.Name())
		assert.Equal(t, "19ABCDE1234F1Z5", c.GSTNumber())
		assert.Zero(t, c.TotalGoldGiven())
		assert.Zero(t, c.TotalGoldDelivered())
		assert.Equal(t, createdAt, c.CreatedAt())
	})

	t.Run("should accept any phone format", func(t *testing.T) {
		d := validDetails()
		d.Phone = "call the shop"

		_, err := client.NewClient(kernel.NewUUID(), d, createdAt)

		require.NoError(t, err)
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		c, err := client.NewClient(kernel.UUID{}, client.Details{Name: " ", Phone: ""}, createdAt)

		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Contains(t, err.Error(), "value is required: name")
		assert.Contains(t, err.Error(), "value is required: phone")
	})
}

func TestClient_Validate(t *testing.T) {
	var nilClient *client.Client
	var zero client.Client

	assert.Equal(t, client.ErrClientIsNotConstructed, nilClient.Validate())
	assert.Equal(t, client.ErrClientIsNotConstructed, zero.Validate())
}

func TestClient_Edit(t *testing.T) {
	c, err := client.NewClient(kernel.NewUUID(), validDetails(), time.Now())
	require.NoError(t, err)

	t.Run("should replace details", func(t *testing.T) {
		err := c.Edit(client.Details{Name: "Meera & Sons", Phone: "12345"})

		require.NoError(t, err)
		assert.Equal(t, "Meera & Sons", c.Name())
		assert.Empty(t, c.Address())
	})

	t.Run("should leave client untouched on error", func(t *testing.T) {
		err := c.Edit(client.Details{Name: "", Phone: "999"})

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Equal(t, "Meera & Sons", c.Name())
		assert.Equal(t, "12345", c.Phone())
	})
}

func TestClient_RecordDelivery(t *testing.T) {
	c, err := client.NewClient(kernel.NewUUID(), validDetails(), time.Now())
	require.NoError(t, err)

	require.NoError(t, c.RecordDelivery(10.5, 9.16))
	require.NoError(t, c.RecordDelivery(2, 1.5))

	assert.InDelta(t, 12.5, c.TotalGoldGiven(), 1e-9)
	assert.InDelta(t, 10.66, c.TotalGoldDelivered(), 1e-9)

	err = c.RecordDelivery(-1, 0)
	require.Error(t, err)
	assert.InDelta(t, 12.5, c.TotalGoldGiven(), 1e-9)
}

func TestRestoreClient(t *testing.T) {
	t.Run("should restore accumulators", func(t *testing.T) {
		c, err := client.RestoreClient(kernel.NewUUID(), validDetails(), 40, 36.6, time.Now())

		require.NoError(t, err)
		assert.InDelta(t, 40.0, c.TotalGoldGiven(), 1e-9)
		assert.InDelta(t, 36.6, c.TotalGoldDelivered(), 1e-9)
	})

	t.Run("should reject negative accumulators", func(t *testing.T) {
		_, err := client.RestoreClient(kernel.NewUUID(), validDetails(), -1, 0, time.Now())

		require.Error(t, err)
	})
}
