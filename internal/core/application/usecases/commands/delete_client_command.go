package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrDeleteClientCommandIsNotConstructed = errors.New(
	"DeleteClientCommand must be created via NewDeleteClientCommand constructor",
)

// DeleteClientCommand removes a client record. The client's orders stay and
// keep their recorded client name.
type DeleteClientCommand struct { //nolint:recvcheck //using for validation
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteClientCommand(clientID kernel.UUID) (DeleteClientCommand, error) {
	if err := clientID.Validate(); err != nil {
		return DeleteClientCommand{}, err
	}

	return DeleteClientCommand{clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteClientCommand) Validate() error {
	return c.guard.Validate(ErrDeleteClientCommandIsNotConstructed)
}

func (c DeleteClientCommand) ClientID() kernel.UUID {
	return c.clientID
}
