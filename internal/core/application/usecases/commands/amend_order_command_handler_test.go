package commands_test

import (
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAmendOrderCommandHandler_Handle(t *testing.T) {
	load := func(t *testing.T, o *order.Order) (*MockUoW, *MockOrderUoWFactory, *MockOrderRepository, *MockOrderLocker) {
		t.Helper()
		uow := new(MockUoW)
		factory := new(MockOrderUoWFactory)
		repo := new(MockOrderRepository)
		locker := new(MockOrderLocker)
		locker.On("Lock", mock.Anything, o.ID()).Return(noopUnlock(), nil).Once()
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Maybe()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		return uow, factory, repo, locker
	}

	t.Run("should record an amendment without touching the stage", func(t *testing.T) {
		o := orderAt(t, newTestClient(t), order.Polishing)
		uow, factory, repo, locker := load(t, o)
		repo.On("Update", mock.Anything, o).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		quality := 75.0
		cmd, err := commands.NewAmendOrderCommand(o.ID(), order.AmendInput{Quality: &quality, Reason: "assay"}, "")
		require.NoError(t, err)

		err = commands.NewAmendOrderCommandHandler(factory, locker, staticIdentity{name: "asha"}, fixedClock()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Polishing, o.CurrentStage())
		require.Len(t, o.Amendments(), 1)
		a := o.Amendments()[0]
		assert.Equal(t, "asha", a.Actor().Name())
		assert.Equal(t, "assay", a.Reason())
		assert.Equal(t, []order.FieldChange{{Field: "quality", Before: "91.6", After: "75"}}, a.Changes())
		assert.InDelta(t, 7.5, o.FineGold(), 1e-9)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should refuse to amend a delivered order", func(t *testing.T) {
		o := orderAt(t, newTestClient(t), order.Delivered)
		uow, factory, repo, locker := load(t, o)
		notes := "late edit"
		cmd, err := commands.NewAmendOrderCommand(o.ID(), order.AmendInput{Notes: &notes}, "")
		require.NoError(t, err)

		err = commands.NewAmendOrderCommandHandler(factory, locker, nil, fixedClock()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should fail as busy when the order is locked", func(t *testing.T) {
		o := orderAt(t, newTestClient(t), order.Making)
		locker := new(MockOrderLocker)
		factory := new(MockOrderUoWFactory)
		locker.On("Lock", mock.Anything, o.ID()).Return(nil, errs.ErrOrderIsBusy).Once()
		notes := "x"
		cmd, err := commands.NewAmendOrderCommand(o.ID(), order.AmendInput{Notes: &notes}, "")
		require.NoError(t, err)

		err = commands.NewAmendOrderCommandHandler(factory, locker, nil, fixedClock()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrOrderIsBusy)
		factory.AssertNotCalled(t, "Create")
	})
}
