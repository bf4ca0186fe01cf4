package queries

import (
	"errors"

	"workshop/internal/core/domain/model/settings"
	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/guard"
)

var ErrGetLedgerQueryIsNotConstructed = errors.New(
	"GetLedgerQuery must be created via NewGetLedgerQuery constructor",
)

// GetLedgerQuery asks for the lifetime totals of the workshop.
//
// Example:
//
//	resp, err := handler.Handle(ctx, NewGetLedgerQuery())
//	// resp.Totals.FineGold is the fine metal of every order ever taken,
//	// resp.Valuation prices it at the current 24k rate
type GetLedgerQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLedgerQuery() GetLedgerQuery {
	return GetLedgerQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerQueryIsNotConstructed)
}

// GetLedgerQueryResponse combines totals, status counts and valuation.
// ProfitGold is reported apart from FineGold and never added to it.
type GetLedgerQueryResponse struct {
	Totals       services.Totals
	StatusCounts services.StatusCounts
	Rates        settings.GoldRates
	Valuation    float64
}
