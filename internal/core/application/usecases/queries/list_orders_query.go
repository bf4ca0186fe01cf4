package queries

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows an order listing. Zero fields do not filter.
type OrderFilter struct {
	Stage    order.Stage
	ClientID kernel.UUID
	// Search matches the client name or the order id, ignoring case.
	Search string
}

// ListOrdersQuery lists orders newest first.
type ListOrdersQuery struct {
	filter OrderFilter
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(filter OrderFilter) (ListOrdersQuery, error) {
	if filter.Stage != order.StageUnknown {
		if err := filter.Stage.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}
