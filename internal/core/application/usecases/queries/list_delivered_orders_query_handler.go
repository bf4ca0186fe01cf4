package queries

import (
	"context"
	"slices"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"

	"gorm.io/gorm"
)

type ListDeliveredOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveredOrdersQueryHandler(db *gorm.DB) ListDeliveredOrdersQueryHandler {
	return ListDeliveredOrdersQueryHandler{db: db}
}

func (h ListDeliveredOrdersQueryHandler) Handle(ctx context.Context, query ListDeliveredOrdersQuery) ([]services.OrderFacts, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	facts, err := loadOrderFacts(ctx, h.db, "stage = ?", order.Delivered.String())
	if err != nil {
		return nil, err
	}

	m := newMatcher(query.Search())
	facts = slices.DeleteFunc(facts, func(f services.OrderFacts) bool {
		return !m.match(f.ClientName, f.ID.String())
	})
	slices.SortStableFunc(facts, func(a, b services.OrderFacts) int {
		return deliveredAt(b).Compare(deliveredAt(a))
	})
	return facts, nil
}

func deliveredAt(f services.OrderFacts) time.Time {
	if f.DeliveredAt != nil {
		return *f.DeliveredAt
	}
	return f.CreatedAt
}
