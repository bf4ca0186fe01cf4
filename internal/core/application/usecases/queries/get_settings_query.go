package queries

import (
	"errors"

	"workshop/internal/pkg/guard"
)

var ErrGetSettingsQueryIsNotConstructed = errors.New(
	"GetSettingsQuery must be created via NewGetSettingsQuery constructor",
)

type GetSettingsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetSettingsQuery() GetSettingsQuery {
	return GetSettingsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetSettingsQuery) Validate() error {
	return q.guard.Validate(ErrGetSettingsQueryIsNotConstructed)
}
