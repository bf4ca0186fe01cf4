package commands

import (
	"context"

	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/ports"
)

// CreateClientCommandHandler persists a new client with zeroed accumulators.
type CreateClientCommandHandler struct {
	uowFactory ClientUoWFactory
	clock      ports.Clock
}

func NewCreateClientCommandHandler(uowFactory ClientUoWFactory, clock ports.Clock) CreateClientCommandHandler {
	return CreateClientCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateClientCommandHandler) Handle(ctx context.Context, cmd CreateClientCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := client.NewClient(cmd.ClientID(), cmd.Details(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return storeError("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ClientRepository().Add(ctx, c); err != nil {
		return storeError("add client", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return storeError("commit", err)
	}

	return nil
}
