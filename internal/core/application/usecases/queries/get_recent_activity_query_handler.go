package queries

import (
	"context"

	"workshop/internal/core/domain/services"

	"gorm.io/gorm"
)

type GetRecentActivityQueryHandler struct {
	db     *gorm.DB
	ledger services.Ledger
}

func NewGetRecentActivityQueryHandler(db *gorm.DB, ledger services.Ledger) GetRecentActivityQueryHandler {
	return GetRecentActivityQueryHandler{db: db, ledger: ledger}
}

// Handle returns up to the query's limit of orders, newest first.
func (h GetRecentActivityQueryHandler) Handle(ctx context.Context, query GetRecentActivityQuery) ([]services.OrderFacts, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	facts, err := loadOrderFacts(ctx, h.db, "")
	if err != nil {
		return nil, err
	}

	return h.ledger.Recent(facts, query.Limit()), nil
}
