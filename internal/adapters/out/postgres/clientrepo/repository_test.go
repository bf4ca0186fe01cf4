package clientrepo_test

import (
	"context"
	"testing"
	"time"

	"workshop/internal/adapters/out/postgres/clientrepo"
	"workshop/internal/adapters/out/postgres/pgtest"
	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

func newClient(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.NewClient(kernel.NewUUID(), client.Details{
		Name:      "Meera Jewellers",
		Phone:     "+91 98200 12345",
		Address:   "Zaveri Bazaar",
		GSTNumber: "27AAAAA0000A1Z5",
	}, time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return c
}

func TestGormClientRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should round-trip details and accumulators", func(t *testing.T) {
		repo := clientrepo.NewGormClientRepository(pgtest.NewSQLite(t), noopTracker{})
		c := newClient(t)
		require.NoError(t, repo.Add(ctx, c))

		require.NoError(t, c.RecordDelivery(10.5, 9.16))
		require.NoError(t, c.Edit(client.Details{Name: "Meera & Sons", Phone: "022 555", Address: ""}))
		require.NoError(t, repo.Update(ctx, c))

		loaded, err := repo.Get(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, "Meera & Sons", loaded.Name())
		assert.Equal(t, "022 555", loaded.Phone())
		assert.Empty(t, loaded.Address())
		assert.Empty(t, loaded.GSTNumber())
		assert.InDelta(t, 10.5, loaded.TotalGoldGiven(), 1e-9)
		assert.InDelta(t, 9.16, loaded.TotalGoldDelivered(), 1e-9)
		assert.True(t, loaded.CreatedAt().Equal(c.CreatedAt()))
	})

	t.Run("should report unknown ids as not found", func(t *testing.T) {
		repo := clientrepo.NewGormClientRepository(pgtest.NewSQLite(t), noopTracker{})

		_, err := repo.Get(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		err = repo.Update(ctx, newClient(t))
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		err = repo.Delete(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should delete a client", func(t *testing.T) {
		repo := clientrepo.NewGormClientRepository(pgtest.NewSQLite(t), noopTracker{})
		c := newClient(t)
		require.NoError(t, repo.Add(ctx, c))

		require.NoError(t, repo.Delete(ctx, c.ID()))

		_, err := repo.Get(ctx, c.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
