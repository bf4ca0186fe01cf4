package commands

import (
	"context"
)

type EditClientCommandHandler struct {
	uowFactory ClientUoWFactory
}

func NewEditClientCommandHandler(uowFactory ClientUoWFactory) EditClientCommandHandler {
	return EditClientCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h EditClientCommandHandler) Handle(ctx context.Context, cmd EditClientCommand) error {
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

	repo := uow.ClientRepository()
	c, err := repo.Get(ctx, cmd.ClientID())
	if err != nil {
		return storeError("get client", err)
	}

	if err = c.Edit(cmd.Details()); err != nil {
		return err
	}

	if err = repo.Update(ctx, c); err != nil {
		return storeError("update client", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return storeError("commit", err)
	}

	return nil
}
