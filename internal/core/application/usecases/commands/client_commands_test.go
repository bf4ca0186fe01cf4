package commands_test

import (
	"errors"
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func clientUoW() (*MockUoW, *MockClientUoWFactory, *MockClientRepository) {
	uow := new(MockUoW)
	factory := new(MockClientUoWFactory)
	repo := new(MockClientRepository)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	uow.On("ClientRepository").Return(repo).Maybe()
	return uow, factory, repo
}

func TestCreateClientCommandHandler_Handle(t *testing.T) {
	t.Run("should register a client with empty accumulators", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, repo := clientUoW()
		id := kernel.NewUUID()
		cmd, err := commands.NewCreateClientCommand(id, client.Details{Name: " Kavya Gold ", Phone: "9820012345"})
		require.NoError(t, err)

		repo.On("Add", ctx, mock.MatchedBy(func(c *client.Client) bool {
			return c.ID() == id && c.Name() == "Kavya Gold" && c.TotalGoldGiven() == 0 && c.CreatedAt().Equal(testNow)
		})).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		err = commands.NewCreateClientCommandHandler(factory, fixedClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should reject a client without a phone before opening a transaction", func(t *testing.T) {
		factory := new(MockClientUoWFactory)
		cmd, err := commands.NewCreateClientCommand(kernel.NewUUID(), client.Details{Name: "Kavya Gold"})
		require.NoError(t, err)

		err = commands.NewCreateClientCommandHandler(factory, fixedClock()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("should report a failed insert as persistence failure", func(t *testing.T) {
		ctx := t.Context()
		_, factory, repo := clientUoW()
		cmd, err := commands.NewCreateClientCommand(kernel.NewUUID(), client.Details{Name: "A", Phone: "1"})
		require.NoError(t, err)
		repo.On("Add", ctx, mock.Anything).Return(errors.New("disk full")).Once()

		err = commands.NewCreateClientCommandHandler(factory, fixedClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPersistenceFailure)
	})
}

func TestEditClientCommandHandler_Handle(t *testing.T) {
	t.Run("should replace the details and keep the accumulators", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, repo := clientUoW()
		c := newTestClient(t)
		require.NoError(t, c.RecordDelivery(5, 4.5))
		cmd, err := commands.NewEditClientCommand(c.ID(), client.Details{Name: "Meera & Sons", Phone: "022 555"})
		require.NoError(t, err)

		repo.On("Get", ctx, c.ID()).Return(c, nil).Once()
		repo.On("Update", ctx, c).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		require.NoError(t, commands.NewEditClientCommandHandler(factory).Handle(ctx, cmd))

		assert.Equal(t, "Meera & Sons", c.Name())
		assert.InDelta(t, 5, c.TotalGoldGiven(), 1e-9)
		repo.AssertExpectations(t)
	})

	t.Run("should surface a missing client as not found", func(t *testing.T) {
		ctx := t.Context()
		_, factory, repo := clientUoW()
		id := kernel.NewUUID()
		cmd, err := commands.NewEditClientCommand(id, client.Details{Name: "X", Phone: "1"})
		require.NoError(t, err)
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("client", id)).Once()

		err = commands.NewEditClientCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDeleteClientCommandHandler_Handle(t *testing.T) {
	t.Run("should delete and commit", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, repo := clientUoW()
		id := kernel.NewUUID()
		cmd, err := commands.NewDeleteClientCommand(id)
		require.NoError(t, err)
		repo.On("Delete", ctx, id).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		require.NoError(t, commands.NewDeleteClientCommandHandler(factory).Handle(ctx, cmd))

		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should reject a zero id", func(t *testing.T) {
		_, err := commands.NewDeleteClientCommand(kernel.UUID{})

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
