package commands

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// CreateOrderCommandHandler opens a new order in the Received stage.
//
// The client must exist; its current name is copied onto the order and never
// refreshed afterwards. An intake photo, if given, is uploaded before the
// order is written. A failed upload aborts the intake.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	store      ports.AttachmentStore
	identity   ports.IdentityProvider
	clock      ports.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	store ports.AttachmentStore,
	identity ports.IdentityProvider,
	clock ports.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		store:      store,
		identity:   identity,
		clock:      clock,
	}
}

// Handle records the intake.
//
// Returns:
//   - nil once the order is committed
//   - ValueIsInvalidError("clientId") when the client does not exist
//   - the joined validation errors of the intake fields
//   - ErrPersistenceFailure when the store or the upload fails
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := resolveActor(ctx, h.identity, cmd.Actor())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storeError("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.ClientRepository().Get(ctx, cmd.ClientID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("clientId", err)
	}
	if err != nil {
		return storeError("get client", err)
	}

	var photo string
	if cmd.Photo() != "" {
		photo, err = h.store.Store(ctx, cmd.Photo(), ports.CategoryOrderPhotos)
		if err != nil {
			return storeError("upload order photo", err)
		}
	}

	o, err := order.NewOrder(cmd.OrderID(), order.Intake{
		ClientID:             c.ID(),
		ClientName:           c.Name(),
		JewelleryType:        cmd.JewelleryType(),
		Measurements:         cmd.Measurements(),
		ExpectedDeliveryDate: cmd.ExpectedDeliveryDate(),
		Notes:                cmd.Notes(),
		Photo:                photo,
		Extras:               cmd.Extras(),
	}, actor, h.clock.Now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return storeError("add order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return storeError("commit", err)
	}

	return nil
}
