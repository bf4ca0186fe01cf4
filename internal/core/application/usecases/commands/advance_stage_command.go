package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/guard"
)

var ErrAdvanceStageCommandIsNotConstructed = errors.New(
	"AdvanceStageCommand must be created via NewAdvanceStageCommand or NewAdvanceToNextStageCommand",
)

// AdvanceStageInput is one transition request. Photo and Signature are the
// raw handover evidence and are only accepted when Target is delivered.
type AdvanceStageInput struct {
	Target    order.Stage
	Actor     string
	Notes     string
	Photo     string
	Signature string
}

// AdvanceStageCommand moves one order one stage forward.
//
// Example:
//
//	cmd, _ := NewAdvanceStageCommand(orderID, AdvanceStageInput{
//	    Target:    order.Delivered,
//	    Photo:     photoDataURI,
//	    Signature: signatureDataURI,
//	})
//	err := handler.Handle(ctx, cmd)
//	// errs.ErrInvalidTransition, errs.ErrMissingProof, errs.ErrOrderIsBusy
//	// or errs.ErrPersistenceFailure on failure; nothing changed in every case
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Stage
	toNext    bool
	actor     string
	notes     string
	photo     string
	signature string

	guard guard.ConstructorGuard
}

func NewAdvanceStageCommand(orderID kernel.UUID, in AdvanceStageInput) (AdvanceStageCommand, error) {
	if err := errors.Join(orderID.Validate(), in.Target.Validate()); err != nil {
		return AdvanceStageCommand{}, err
	}

	return AdvanceStageCommand{
		orderID:   orderID,
		target:    in.Target,
		actor:     strings.TrimSpace(in.Actor),
		notes:     strings.TrimSpace(in.Notes),
		photo:     strings.TrimSpace(in.Photo),
		signature: strings.TrimSpace(in.Signature),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewAdvanceToNextStageCommand targets whatever stage follows the order's
// current one, as resolved under the order lock. It carries no proof, so an
// order in Ready fails with a MissingProof error.
func NewAdvanceToNextStageCommand(orderID kernel.UUID, actor, notes string) (AdvanceStageCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AdvanceStageCommand{}, err
	}

	return AdvanceStageCommand{
		orderID: orderID,
		toNext:  true,
		actor:   strings.TrimSpace(actor),
		notes:   strings.TrimSpace(notes),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}

func (c AdvanceStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target is the requested stage, or StageUnknown for a next-stage request.
func (c AdvanceStageCommand) Target() order.Stage {
	return c.target
}

func (c AdvanceStageCommand) ToNext() bool {
	return c.toNext
}

func (c AdvanceStageCommand) Actor() string {
	return c.actor
}

func (c AdvanceStageCommand) Notes() string {
	return c.notes
}

func (c AdvanceStageCommand) Photo() string {
	return c.photo
}

func (c AdvanceStageCommand) Signature() string {
	return c.signature
}

// HasProof reports whether any handover evidence was supplied.
func (c AdvanceStageCommand) HasProof() bool {
	return c.photo != "" || c.signature != ""
}
