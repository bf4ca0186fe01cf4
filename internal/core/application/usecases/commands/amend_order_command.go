package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/guard"
)

var ErrAmendOrderCommandIsNotConstructed = errors.New(
	"AmendOrderCommand must be created via NewAmendOrderCommand constructor",
)

// AmendOrderCommand edits an undelivered order's measurements or
// commitments. It is audited and never changes the stage.
type AmendOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	input   order.AmendInput
	actor   string

	guard guard.ConstructorGuard
}

func NewAmendOrderCommand(orderID kernel.UUID, input order.AmendInput, actor string) (AmendOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AmendOrderCommand{}, err
	}

	return AmendOrderCommand{
		orderID: orderID,
		input:   input,
		actor:   strings.TrimSpace(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AmendOrderCommand) Validate() error {
	return c.guard.Validate(ErrAmendOrderCommandIsNotConstructed)
}

func (c AmendOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AmendOrderCommand) Input() order.AmendInput {
	return c.input
}

func (c AmendOrderCommand) Actor() string {
	return c.actor
}
