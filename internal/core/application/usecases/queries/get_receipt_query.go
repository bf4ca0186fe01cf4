package queries

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrGetReceiptQueryIsNotConstructed = errors.New(
	"GetReceiptQuery must be created via NewGetReceiptQuery constructor",
)

// GetReceiptQuery asks for the shareable receipt of a delivered order.
type GetReceiptQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetReceiptQuery(orderID kernel.UUID) (GetReceiptQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetReceiptQuery{}, err
	}
	return GetReceiptQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetReceiptQuery) Validate() error {
	return q.guard.Validate(ErrGetReceiptQueryIsNotConstructed)
}

func (q GetReceiptQuery) OrderID() kernel.UUID {
	return q.orderID
}
