package queries

import (
	"context"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

// GetOrderQueryResponse is the full order. Derived weights are computed on
// read by the aggregate.
type GetOrderQueryResponse struct {
	Order     *order.Order
	IsOverdue bool
}

// GetOrderQueryHandler loads the aggregate through the repository, so a
// stored order that violates an invariant is reported instead of returned.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
	ledger services.Ledger
	clock  ports.Clock
}

func NewGetOrderQueryHandler(orders ports.OrderRepository, ledger services.Ledger, clock ports.Clock) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, ledger: ledger, clock: clock}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		Order:     o,
		IsOverdue: o.IsOverdue(h.ledger.Today(h.clock.Now())),
	}, nil
}
