package queries

import (
	"errors"
	"strings"

	"workshop/internal/pkg/guard"
)

var ErrListDeliveredOrdersQueryIsNotConstructed = errors.New(
	"ListDeliveredOrdersQuery must be created via NewListDeliveredOrdersQuery constructor",
)

// ListDeliveredOrdersQuery lists the orders ready for billing, most recently
// delivered first. Search matches the client name or the order id.
type ListDeliveredOrdersQuery struct {
	search string
	guard  guard.ConstructorGuard
}

func NewListDeliveredOrdersQuery(search string) ListDeliveredOrdersQuery {
	return ListDeliveredOrdersQuery{search: strings.TrimSpace(search), guard: guard.NewConstructorGuard()}
}

func (q ListDeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveredOrdersQueryIsNotConstructed)
}

func (q ListDeliveredOrdersQuery) Search() string {
	return q.search
}
