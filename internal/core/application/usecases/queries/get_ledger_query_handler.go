package queries

import (
	"context"

	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"

	"gorm.io/gorm"
)

// GetLedgerQueryHandler aggregates every order on each call.
type GetLedgerQueryHandler struct {
	db       *gorm.DB
	settings ports.SettingsRepository
	ledger   services.Ledger
	clock    ports.Clock
}

func NewGetLedgerQueryHandler(
	db *gorm.DB,
	settings ports.SettingsRepository,
	ledger services.Ledger,
	clock ports.Clock,
) GetLedgerQueryHandler {
	return GetLedgerQueryHandler{db: db, settings: settings, ledger: ledger, clock: clock}
}

func (h GetLedgerQueryHandler) Handle(ctx context.Context, query GetLedgerQuery) (GetLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLedgerQueryResponse{}, err
	}

	facts, err := loadOrderFacts(ctx, h.db, "")
	if err != nil {
		return GetLedgerQueryResponse{}, err
	}

	s, err := h.settings.Get(ctx)
	if err != nil {
		return GetLedgerQueryResponse{}, err
	}

	totals := h.ledger.Totals(facts)
	return GetLedgerQueryResponse{
		Totals:       totals,
		StatusCounts: h.ledger.StatusCounts(facts, h.clock.Now()),
		Rates:        s.Rates(),
		Valuation:    s.Valuation(totals.FineGold),
	}, nil
}
