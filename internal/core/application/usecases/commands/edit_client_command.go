package commands

import (
	"errors"

	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrEditClientCommandIsNotConstructed = errors.New(
	"EditClientCommand must be created via NewEditClientCommand constructor",
)

// EditClientCommand replaces a client's contact details. Orders keep the
// client name they were created with.
type EditClientCommand struct { //nolint:recvcheck //using for validation
	clientID kernel.UUID
	details  client.Details

	guard guard.ConstructorGuard
}

func NewEditClientCommand(clientID kernel.UUID, details client.Details) (EditClientCommand, error) {
	if err := clientID.Validate(); err != nil {
		return EditClientCommand{}, err
	}

	return EditClientCommand{
		clientID: clientID,
		details:  details,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c EditClientCommand) Validate() error {
	return c.guard.Validate(ErrEditClientCommandIsNotConstructed)
}

func (c EditClientCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c EditClientCommand) Details() client.Details {
	return c.details
}
