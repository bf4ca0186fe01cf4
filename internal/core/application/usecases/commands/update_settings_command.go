package commands

import (
	"errors"

	"workshop/internal/core/domain/model/settings"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrUpdateSettingsCommandIsNotConstructed = errors.New(
	"UpdateSettingsCommand must be created via NewUpdateSettingsCommand constructor",
)

// RatesInput carries new per-gram gold rates.
type RatesInput struct {
	Rate24k float64
	Rate22k float64
}

// UpdateSettingsCommand changes the gold rates, the shop details, or both.
type UpdateSettingsCommand struct { //nolint:recvcheck //using for validation
	rates *RatesInput
	shop  *settings.ShopDetails

	guard guard.ConstructorGuard
}

func NewUpdateSettingsCommand(rates *RatesInput, shop *settings.ShopDetails) (UpdateSettingsCommand, error) {
	if rates == nil && shop == nil {
		return UpdateSettingsCommand{}, errs.NewValueIsRequiredError("settings")
	}

	return UpdateSettingsCommand{rates: rates, shop: shop, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSettingsCommandIsNotConstructed)
}

// Rates returns nil when the rates are left unchanged.
func (c UpdateSettingsCommand) Rates() *RatesInput {
	return c.rates
}

// Shop returns nil when the shop details are left unchanged.
func (c UpdateSettingsCommand) Shop() *settings.ShopDetails {
	return c.shop
}
