package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

// MaxBulkAdvance caps the number of orders in one bulk request.
const MaxBulkAdvance = 200

var ErrBulkAdvanceCommandIsNotConstructed = errors.New(
	"BulkAdvanceCommand must be created via NewBulkAdvanceCommand constructor",
)

// BulkAdvanceCommand moves each listed order to its own next stage.
// Duplicate ids are collapsed, keeping the first occurrence.
type BulkAdvanceCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	actor    string

	guard guard.ConstructorGuard
}

func NewBulkAdvanceCommand(orderIDs []kernel.UUID, actor string) (BulkAdvanceCommand, error) {
	if len(orderIDs) == 0 {
		return BulkAdvanceCommand{}, errs.NewValueIsRequiredError("orderIds")
	}
	if len(orderIDs) > MaxBulkAdvance {
		return BulkAdvanceCommand{}, errs.NewValueIsOutOfRangeError("orderIds", len(orderIDs), 1, MaxBulkAdvance)
	}

	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	unique := make([]kernel.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return BulkAdvanceCommand{}, errs.NewValueIsInvalidErrorWithCause("orderIds", err)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return BulkAdvanceCommand{
		orderIDs: unique,
		actor:    strings.TrimSpace(actor),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c BulkAdvanceCommand) Validate() error {
	return c.guard.Validate(ErrBulkAdvanceCommandIsNotConstructed)
}

func (c BulkAdvanceCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

func (c BulkAdvanceCommand) Actor() string {
	return c.actor
}
