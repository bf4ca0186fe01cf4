package commands

import (
	"context"
)

type DeleteClientCommandHandler struct {
	uowFactory ClientUoWFactory
}

func NewDeleteClientCommandHandler(uowFactory ClientUoWFactory) DeleteClientCommandHandler {
	return DeleteClientCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h DeleteClientCommandHandler) Handle(ctx context.Context, cmd DeleteClientCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storeError("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ClientRepository().Delete(ctx, cmd.ClientID()); err != nil {
		return storeError("delete client", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return storeError("commit", err)
	}

	return nil
}
