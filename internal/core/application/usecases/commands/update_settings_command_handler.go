package commands

import (
	"context"

	"workshop/internal/core/ports"
)

type UpdateSettingsCommandHandler struct {
	uowFactory SettingsUoWFactory
	clock      ports.Clock
}

func NewUpdateSettingsCommandHandler(uowFactory SettingsUoWFactory, clock ports.Clock) UpdateSettingsCommandHandler {
	return UpdateSettingsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h UpdateSettingsCommandHandler) Handle(ctx context.Context, cmd UpdateSettingsCommand) error {
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

	repo := uow.SettingsRepository()
	s, err := repo.Get(ctx)
	if err != nil {
		return storeError("get settings", err)
	}

	if r := cmd.Rates(); r != nil {
		if err = s.UpdateRates(r.Rate24k, r.Rate22k, h.clock.Now()); err != nil {
			return err
		}
	}

	if shop := cmd.Shop(); shop != nil {
		if err = s.UpdateShop(*shop); err != nil {
			return err
		}
	}

	if err = repo.Save(ctx, s); err != nil {
		return storeError("save settings", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return storeError("commit", err)
	}

	return nil
}
