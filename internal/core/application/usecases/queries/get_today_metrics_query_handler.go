package queries

import (
	"context"

	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"

	"gorm.io/gorm"
)

type GetTodayMetricsQueryHandler struct {
	db     *gorm.DB
	ledger services.Ledger
	clock  ports.Clock
}

func NewGetTodayMetricsQueryHandler(db *gorm.DB, ledger services.Ledger, clock ports.Clock) GetTodayMetricsQueryHandler {
	return GetTodayMetricsQueryHandler{db: db, ledger: ledger, clock: clock}
}

func (h GetTodayMetricsQueryHandler) Handle(ctx context.Context, query GetTodayMetricsQuery) (services.TodayMetrics, error) {
	if err := query.Validate(); err != nil {
		return services.TodayMetrics{}, err
	}

	facts, err := loadOrderFacts(ctx, h.db, "")
	if err != nil {
		return services.TodayMetrics{}, err
	}

	return h.ledger.TodayMetrics(facts, h.clock.Now()), nil
}
