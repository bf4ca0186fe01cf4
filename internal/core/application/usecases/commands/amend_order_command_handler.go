package commands

import (
	"context"
	"errors"

	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// AmendOrderCommandHandler applies an amendment under the same per-order lock
// as stage transitions, so an edit never interleaves with a delivery.
type AmendOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	identity   ports.IdentityProvider
	clock      ports.Clock
}

func NewAmendOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	identity ports.IdentityProvider,
	clock ports.Clock,
) AmendOrderCommandHandler {
	return AmendOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		identity:   identity,
		clock:      clock,
	}
}

// Handle applies the amendment and appends its audit record.
//
// Returns:
//   - nil once the amended order is committed
//   - ErrObjectNotFound for an unknown order
//   - a validation error for a delivered order, an amendment that changes
//     nothing or values out of range
//   - ErrOrderIsBusy or ErrPersistenceFailure from the lock and the store
func (h AmendOrderCommandHandler) Handle(ctx context.Context, cmd AmendOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := resolveActor(ctx, h.identity, cmd.Actor())

	unlock, err := h.locker.Lock(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrOrderIsBusy) {
			return err
		}
		return errs.AsPersistenceFailure("lock order", err)
	}
	defer func() {
		_ = unlock(context.WithoutCancel(ctx))
	}()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return storeError("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return storeError("get order", err)
	}

	if err = o.Amend(cmd.Input(), actor, h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return errs.AsPersistenceFailure("update order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return storeError("commit", err)
	}

	return nil
}
