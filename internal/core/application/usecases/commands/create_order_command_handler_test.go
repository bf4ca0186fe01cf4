package commands_test

import (
	"errors"
	"testing"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intakeFor(clientID kernel.UUID) commands.CreateOrderInput {
	return commands.CreateOrderInput{
		ClientID:             clientID,
		JewelleryType:        "Gold",
		TotalDelivered:       10.5,
		StoneWeight:          0.5,
		Quality:              91.6,
		ProfitGold:           0.25,
		ExpectedDeliveryDate: kernel.NewDate(2024, time.March, 20),
		Notes:                "  ring, size 14 ",
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should normalise the intake", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), intakeFor(kernel.NewUUID()))

		require.NoError(t, err)
		assert.Equal(t, order.Gold, cmd.JewelleryType())
		assert.Equal(t, "ring, size 14", cmd.Notes())
		assert.InDelta(t, 0.25, cmd.Extras().ProfitGold, 1e-9)
		require.NoError(t, cmd.Validate())
	})

	t.Run("should collect every intake error", func(t *testing.T) {
		in := intakeFor(kernel.UUID{})
		in.JewelleryType = "platinum"
		in.ExpectedDeliveryDate = kernel.Date{}

		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), in)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "clientId")
		assert.Contains(t, err.Error(), "expectedDeliveryDate")
	})

	t.Run("should reject purity above one hundred percent", func(t *testing.T) {
		in := intakeFor(kernel.NewUUID())
		in.Quality = 120

		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), in)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	setup := func() (*MockUoW, *MockOrderUoWFactory, *MockOrderRepository, *MockClientRepository, *MockAttachmentStore) {
		uow := new(MockUoW)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Maybe()
		return uow, factory, new(MockOrderRepository), new(MockClientRepository), new(MockAttachmentStore)
	}

	t.Run("should open a received order carrying the client name", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, orders, clients, store := setup()
		c := newTestClient(t)
		in := intakeFor(c.ID())
		in.Photo = "data:image/jpeg;base64,AAAA"
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), in)
		require.NoError(t, err)

		var added *order.Order
		uow.On("ClientRepository").Return(clients).Once()
		clients.On("Get", ctx, c.ID()).Return(c, nil).Once()
		store.On("Store", ctx, in.Photo, ports.CategoryOrderPhotos).Return("https://cdn/order.jpg", nil).Once()
		uow.On("OrderRepository").Return(orders).Once()
		orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*order.Order) }).
			Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		handler := commands.NewCreateOrderCommandHandler(factory, store, staticIdentity{name: "asha"}, fixedClock())
		require.NoError(t, handler.Handle(ctx, cmd))

		require.NotNil(t, added)
		assert.Equal(t, cmd.OrderID(), added.ID())
		assert.Equal(t, "Meera Jewellers", added.ClientName())
		assert.Equal(t, order.Received, added.CurrentStage())
		assert.Equal(t, "https://cdn/order.jpg", added.Photo())
		assert.Equal(t, "asha", added.LastStageEntry().UpdatedBy().Name())
		assert.True(t, added.CreatedAt().Equal(testNow))
		assert.InDelta(t, 9.16, added.FineGold(), 1e-9)
		uow.AssertExpectations(t)
		clients.AssertExpectations(t)
		orders.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("should not upload when no photo is given", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, orders, clients, store := setup()
		c := newTestClient(t)
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), intakeFor(c.ID()))
		require.NoError(t, err)

		uow.On("ClientRepository").Return(clients).Once()
		clients.On("Get", ctx, c.ID()).Return(c, nil).Once()
		uow.On("OrderRepository").Return(orders).Once()
		orders.On("Add", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		handler := commands.NewCreateOrderCommandHandler(factory, store, staticIdentity{}, fixedClock())
		require.NoError(t, handler.Handle(ctx, cmd))

		store.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject an unknown client as invalid input", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, orders, clients, store := setup()
		id := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), intakeFor(id))
		require.NoError(t, err)

		uow.On("ClientRepository").Return(clients).Once()
		clients.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("client", id)).Once()

		handler := commands.NewCreateOrderCommandHandler(factory, store, staticIdentity{}, fixedClock())
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should abort the intake when the photo upload fails", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, orders, clients, store := setup()
		c := newTestClient(t)
		in := intakeFor(c.ID())
		in.Photo = "data:image/jpeg;base64,AAAA"
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), in)
		require.NoError(t, err)

		uow.On("ClientRepository").Return(clients).Once()
		clients.On("Get", ctx, c.ID()).Return(c, nil).Once()
		store.On("Store", ctx, in.Photo, ports.CategoryOrderPhotos).Return("", errors.New("quota exceeded")).Once()

		handler := commands.NewCreateOrderCommandHandler(factory, store, staticIdentity{}, fixedClock())
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPersistenceFailure)
		orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should reject an unconstructed command", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), nil, nil, fixedClock())

		err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
