package commands

import (
	"errors"

	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrCreateClientCommandIsNotConstructed = errors.New(
	"CreateClientCommand must be created via NewCreateClientCommand constructor",
)

// CreateClientCommand registers a new client. Details are validated by the
// client aggregate.
type CreateClientCommand struct { //nolint:recvcheck //using for validation
	clientID kernel.UUID
	details  client.Details

	guard guard.ConstructorGuard
}

func NewCreateClientCommand(clientID kernel.UUID, details client.Details) (CreateClientCommand, error) {
	if err := clientID.Validate(); err != nil {
		return CreateClientCommand{}, err
	}

	return CreateClientCommand{
		clientID: clientID,
		details:  details,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

func (c CreateClientCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c CreateClientCommand) Details() client.Details {
	return c.details
}
