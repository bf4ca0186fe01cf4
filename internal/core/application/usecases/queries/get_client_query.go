package queries

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrGetClientQueryIsNotConstructed = errors.New(
	"GetClientQuery must be created via NewGetClientQuery constructor",
)

// GetClientQuery asks for one client with its order counts and orders.
type GetClientQuery struct {
	clientID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetClientQuery(clientID kernel.UUID) (GetClientQuery, error) {
	if err := clientID.Validate(); err != nil {
		return GetClientQuery{}, err
	}
	return GetClientQuery{clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetClientQuery) Validate() error {
	return q.guard.Validate(ErrGetClientQueryIsNotConstructed)
}

func (q GetClientQuery) ClientID() kernel.UUID {
	return q.clientID
}
