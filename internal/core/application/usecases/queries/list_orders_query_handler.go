package queries

import (
	"context"
	"strings"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"

	"gorm.io/gorm"
)

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	services.OrderFacts
	IsOverdue bool
}

// ListOrdersQueryHandler filters by stage and client in SQL and by the search
// term in memory.
type ListOrdersQueryHandler struct {
	db     *gorm.DB
	ledger services.Ledger
	clock  ports.Clock
}

func NewListOrdersQueryHandler(db *gorm.DB, ledger services.Ledger, clock ports.Clock) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, ledger: ledger, clock: clock}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	var (
		clauses []string
		args    []any
	)
	if filter.Stage != order.StageUnknown {
		clauses = append(clauses, "stage = ?")
		args = append(args, filter.Stage.String())
	}
	if filter.ClientID.Validate() == nil {
		clauses = append(clauses, "client_id = ?")
		args = append(args, filter.ClientID.Bytes())
	}

	facts, err := loadOrderFacts(ctx, h.db, strings.Join(clauses, " AND "), args...)
	if err != nil {
		return nil, err
	}

	today := h.ledger.Today(h.clock.Now())
	m := newMatcher(filter.Search)
	result := make([]OrderSummary, 0, len(facts))
	for _, f := range facts {
		if !m.match(f.ClientName, f.ID.String()) {
			continue
		}
		result = append(result, OrderSummary{
			OrderFacts: f,
			IsOverdue:  order.IsOverdue(f.Stage, f.ExpectedDeliveryDate, today),
		})
	}
	return result, nil
}
